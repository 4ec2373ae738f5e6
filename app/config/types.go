package config

// Profile describes a single filtering job loaded from a YAML file.
type Profile struct {
	Feed   ProfileFeed   `yaml:"feed"`
	Filter ProfileFilter `yaml:"filter"`
}

type ProfileFeed struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

type ProfileFilter struct {
	Category string `yaml:"category"`
}
