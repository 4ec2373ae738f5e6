package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Filtering job configuration
	InputPath  string `long:"input" env:"RSIFT_INPUT" default:"docs/rss.xml" description:"Path of the source feed document"`
	OutputPath string `long:"output" env:"RSIFT_OUTPUT" default:"docs/r-rss.xml" description:"Path to write the filtered feed document to"`
	Category   string `long:"category" env:"RSIFT_CATEGORY" default:"R" description:"Category label an entry must carry to be kept"`
	Profile    string `long:"profile" env:"RSIFT_PROFILE" description:"YAML job profile overriding input/output/category (optional)"`

	// Runtime configuration
	Watch   bool   `long:"watch" env:"RSIFT_WATCH" description:"Keep running and re-filter whenever the input file changes"`
	Serve   bool   `long:"serve" env:"RSIFT_SERVE" description:"Serve the filtered feed over HTTP for preview"`
	Port    string `long:"port" env:"PORT" default:"8080" description:"HTTP server port (with --serve)"`
	FeedUrl string `long:"feed-url" env:"RSIFT_FEED_URL" description:"Public URL of the filtered feed, emitted as its self link (optional)"`

	// Application metadata
	Debug       bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
	ShowVersion bool `long:"version" description:"Print version and exit"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		InputPath:   raw.InputPath,
		OutputPath:  raw.OutputPath,
		Category:    raw.Category,
		Profile:     raw.Profile,
		Watch:       raw.Watch,
		Serve:       raw.Serve,
		Port:        raw.Port,
		FeedUrl:     raw.FeedUrl,
		Debug:       raw.Debug,
		ShowVersion: raw.ShowVersion,
		Version:     GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
