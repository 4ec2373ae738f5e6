package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of job profiles
type Loader struct {
	path string
}

// NewLoader creates a new profile loader
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and validates the YAML profile file
func (l *Loader) Load() (*Profile, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.setDefaults(&profile)

	if err := l.validate(&profile); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", l.path, err)
	}

	return &profile, nil
}

// setDefaults applies default values to the profile
func (l *Loader) setDefaults(profile *Profile) {
	if profile.Feed.Input == "" {
		profile.Feed.Input = "docs/rss.xml"
	}
	if profile.Feed.Output == "" {
		profile.Feed.Output = "docs/r-rss.xml"
	}
}

func (l *Loader) validate(profile *Profile) error {
	if profile.Filter.Category == "" {
		return fmt.Errorf("filter category is required")
	}
	if profile.Feed.Input == profile.Feed.Output {
		return fmt.Errorf("input and output must be different files")
	}
	return nil
}
