package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	filePath string
}

// NewLoader creates a new configuration loader reading the default config
// file location (~/.taskboard/config.toml)
func NewLoader() *Loader {
	homeDir, _ := os.UserHomeDir()
	return &Loader{
		config:   NewConfig(),
		filePath: filepath.Join(homeDir, ".taskboard", "config.toml"),
	}
}

// NewLoaderWithFile creates a loader reading an explicit config file path
func NewLoaderWithFile(path string) *Loader {
	return &Loader{
		config:   NewConfig(),
		filePath: path,
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the config file, when present
// 3. Override with environment variables
// 4. Validate
func (l *Loader) Load() (*Config, error) {
	// Step 1: Start with defaults (already done in NewConfig)

	// Step 2: Load from the config file; a missing file is not an error
	if err := l.config.loadFromFile(l.filePath); err != nil {
		return nil, err
	}

	// Step 3: Load from environment variables
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	// Step 4: Validate the configuration
	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// fileConfig mirrors Config for TOML decoding. Durations are strings
// ("30s", "2m") and booleans are pointers so an absent key never clobbers
// a default.
type fileConfig struct {
	Airtable AirtableConfig `toml:"airtable"`
	Cache    struct {
		DedupeInterval    string `toml:"dedupe_interval"`
		RefreshInterval   string `toml:"refresh_interval"`
		BackgroundRefresh *bool  `toml:"background_refresh"`
	} `toml:"cache"`
	Display struct {
		StatusPreset string `toml:"status_preset"`
		ShowClosed   *bool  `toml:"show_closed"`
		DateFormat   string `toml:"date_format"`
	} `toml:"display"`
	Application struct {
		Timeout string `toml:"timeout"`
		Verbose *bool  `toml:"verbose"`
	} `toml:"application"`
}

func (c *Config) loadFromFile(path string) error {
	var file fileConfig
	if _, err := toml.DecodeFile(path, &file); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &ConfigError{Field: "file", Message: "cannot read " + path + ": " + err.Error()}
	}

	if file.Airtable.Token != "" {
		c.Airtable.Token = file.Airtable.Token
	}
	if file.Airtable.BaseID != "" {
		c.Airtable.BaseID = file.Airtable.BaseID
	}
	if file.Airtable.TasksTableID != "" {
		c.Airtable.TasksTableID = file.Airtable.TasksTableID
	}
	if file.Airtable.ClientsTableID != "" {
		c.Airtable.ClientsTableID = file.Airtable.ClientsTableID
	}
	if file.Airtable.StagesTableID != "" {
		c.Airtable.StagesTableID = file.Airtable.StagesTableID
	}
	if file.Airtable.TeamTableID != "" {
		c.Airtable.TeamTableID = file.Airtable.TeamTableID
	}
	if file.Airtable.ColorsTableID != "" {
		c.Airtable.ColorsTableID = file.Airtable.ColorsTableID
	}
	if file.Airtable.BaseURL != "" {
		c.Airtable.BaseURL = file.Airtable.BaseURL
	}

	c.Cache.DedupeInterval = ParseDurationWithFallback(file.Cache.DedupeInterval, c.Cache.DedupeInterval)
	c.Cache.RefreshInterval = ParseDurationWithFallback(file.Cache.RefreshInterval, c.Cache.RefreshInterval)
	if file.Cache.BackgroundRefresh != nil {
		c.Cache.BackgroundRefresh = *file.Cache.BackgroundRefresh
	}

	if file.Display.StatusPreset != "" {
		c.Display.StatusPreset = file.Display.StatusPreset
	}
	if file.Display.ShowClosed != nil {
		c.Display.ShowClosed = *file.Display.ShowClosed
	}
	if file.Display.DateFormat != "" {
		c.Display.DateFormat = file.Display.DateFormat
	}

	c.Application.Timeout = ParseDurationWithFallback(file.Application.Timeout, c.Application.Timeout)
	if file.Application.Verbose != nil {
		c.Application.Verbose = *file.Application.Verbose
	}

	return nil
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}
