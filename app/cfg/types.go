package cfg

type Cfg struct {
	// Filtering job configuration
	InputPath  string
	OutputPath string
	Category   string
	Profile    string

	// Runtime configuration
	Watch   bool
	Serve   bool
	Port    string
	FeedUrl string

	// Application metadata
	Debug       bool
	ShowVersion bool
	Version     string
}
