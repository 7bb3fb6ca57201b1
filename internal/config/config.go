package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration options for the task board application
type Config struct {
	Airtable    AirtableConfig
	Cache       CacheConfig
	Display     DisplayConfig
	Application ApplicationConfig
}

// AirtableConfig identifies the remote base and its tables. Table ids left
// empty mark that resource as not configured; operations against it are
// refused before any network call.
type AirtableConfig struct {
	Token          string `toml:"token"`
	BaseID         string `toml:"base_id"`
	TasksTableID   string `toml:"tasks_table_id"`
	ClientsTableID string `toml:"clients_table_id"`
	StagesTableID  string `toml:"stages_table_id"`
	TeamTableID    string `toml:"team_table_id"`
	ColorsTableID  string `toml:"colors_table_id"`
	BaseURL        string `toml:"base_url"`
}

// CacheConfig holds the freshness and revalidation intervals
type CacheConfig struct {
	DedupeInterval    time.Duration
	RefreshInterval   time.Duration
	BackgroundRefresh bool
}

// DisplayConfig holds presentation defaults
type DisplayConfig struct {
	StatusPreset string
	ShowClosed   bool
	DateFormat   string
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration
	Verbose bool
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			DedupeInterval:    5 * time.Second,
			RefreshInterval:   30 * time.Second,
			BackgroundRefresh: false,
		},
		Display: DisplayConfig{
			StatusPreset: "completed",
			ShowClosed:   false,
			DateFormat:   "2006-01-02",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Airtable configuration
	if token := os.Getenv("TB_AIRTABLE_TOKEN"); token != "" {
		c.Airtable.Token = token
	}
	if baseID := os.Getenv("TB_AIRTABLE_BASE_ID"); baseID != "" {
		c.Airtable.BaseID = baseID
	}
	if id := os.Getenv("TB_AIRTABLE_TASKS_TABLE_ID"); id != "" {
		c.Airtable.TasksTableID = id
	}
	if id := os.Getenv("TB_AIRTABLE_CLIENTS_TABLE_ID"); id != "" {
		c.Airtable.ClientsTableID = id
	}
	if id := os.Getenv("TB_AIRTABLE_STAGES_TABLE_ID"); id != "" {
		c.Airtable.StagesTableID = id
	}
	if id := os.Getenv("TB_AIRTABLE_TEAM_TABLE_ID"); id != "" {
		c.Airtable.TeamTableID = id
	}
	if id := os.Getenv("TB_AIRTABLE_COLORS_TABLE_ID"); id != "" {
		c.Airtable.ColorsTableID = id
	}
	if url := os.Getenv("TB_AIRTABLE_BASE_URL"); url != "" {
		c.Airtable.BaseURL = url
	}

	// Cache configuration
	if interval := os.Getenv("TB_CACHE_DEDUPE_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Cache.DedupeInterval = d
		}
	}
	if interval := os.Getenv("TB_CACHE_REFRESH_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Cache.RefreshInterval = d
		}
	}
	if refresh := os.Getenv("TB_CACHE_BACKGROUND_REFRESH"); refresh != "" {
		if b, err := strconv.ParseBool(refresh); err == nil {
			c.Cache.BackgroundRefresh = b
		}
	}

	// Display configuration
	if preset := os.Getenv("TB_DISPLAY_STATUS_PRESET"); preset != "" {
		c.Display.StatusPreset = preset
	}
	if showClosed := os.Getenv("TB_DISPLAY_SHOW_CLOSED"); showClosed != "" {
		if b, err := strconv.ParseBool(showClosed); err == nil {
			c.Display.ShowClosed = b
		}
	}
	if format := os.Getenv("TB_DISPLAY_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}

	// Application configuration
	if timeout := os.Getenv("TB_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("TB_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// UnconfiguredTables names the resources whose table id is missing.
// Operations against them are refused, so the gap is surfaced at startup
// rather than on first use.
func (c *AirtableConfig) UnconfiguredTables() []string {
	var missing []string
	if c.TasksTableID == "" {
		missing = append(missing, "tasks")
	}
	if c.ClientsTableID == "" {
		missing = append(missing, "clients")
	}
	if c.StagesTableID == "" {
		missing = append(missing, "lifecycle stages")
	}
	if c.TeamTableID == "" {
		missing = append(missing, "team members")
	}
	if c.ColorsTableID == "" {
		missing = append(missing, "status colors")
	}
	return missing
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate Airtable configuration
	if c.Airtable.Token == "" {
		return &ConfigError{Field: "airtable.token", Message: "access token cannot be empty (set TB_AIRTABLE_TOKEN)"}
	}
	if c.Airtable.BaseID == "" {
		return &ConfigError{Field: "airtable.base_id", Message: "base id cannot be empty (set TB_AIRTABLE_BASE_ID)"}
	}

	// Validate cache configuration
	if c.Cache.DedupeInterval <= 0 {
		return &ConfigError{Field: "cache.dedupe_interval", Message: "dedupe interval must be positive"}
	}
	if c.Cache.RefreshInterval <= 0 {
		return &ConfigError{Field: "cache.refresh_interval", Message: "refresh interval must be positive"}
	}

	// Validate display configuration
	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
