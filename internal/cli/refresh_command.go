package cli

import (
	"context"
	"fmt"

	"taskboard/internal/api"
)

// RefreshCommand handles the refresh command
type RefreshCommand struct {
	api          api.API
	errorHandler *ErrorHandler
	app          *App
}

// NewRefreshCommand creates a new refresh command handler
func NewRefreshCommand(app *App) *RefreshCommand {
	return &RefreshCommand{
		api:          app.api,
		errorHandler: NewErrorHandler(),
		app:          app,
	}
}

// Execute revalidates the named resource keys, or all of them
func (c *RefreshCommand) Execute(ctx context.Context, keys []string) error {
	if err := c.api.Refresh(ctx, keys...); err != nil {
		return c.errorHandler.Handle("refresh", err)
	}

	if len(keys) == 0 {
		fmt.Fprintln(c.app.out, "Refreshed all resources")
	} else {
		fmt.Fprintf(c.app.out, "Refreshed %d resource(s)\n", len(keys))
	}
	return nil
}
