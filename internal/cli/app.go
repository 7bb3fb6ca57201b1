package cli

import (
	"io"
	"os"
	"time"

	"taskboard/internal/api"
	"taskboard/internal/config"
	"taskboard/internal/status"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App bundles the dependencies every command handler needs
type App struct {
	api      api.API
	registry *status.Registry
	config   *config.Config
	out      io.Writer
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(apiInstance api.API, registry *status.Registry, cfg *config.Config) *App {
	return &App{
		api:      apiInstance,
		registry: registry,
		config:   cfg,
		out:      os.Stdout,
	}
}

// NewAppWithWriter creates an App that renders to the given writer
func NewAppWithWriter(apiInstance api.API, registry *status.Registry, cfg *config.Config, out io.Writer) *App {
	return &App{
		api:      apiInstance,
		registry: registry,
		config:   cfg,
		out:      out,
	}
}

// statusPreset returns the configured excluded-status preset name
func (a *App) statusPreset() string {
	if a.config != nil {
		return a.config.Display.StatusPreset
	}
	return "completed"
}

// dateFormat returns the configured due-date display format
func (a *App) dateFormat() string {
	if a.config != nil && a.config.Display.DateFormat != "" {
		return a.config.Display.DateFormat
	}
	return "2006-01-02"
}
