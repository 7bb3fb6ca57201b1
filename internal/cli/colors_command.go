package cli

import (
	"context"
	"fmt"
	"sort"

	"taskboard/internal/api"
)

// ColorsCommand handles the colors command group
type ColorsCommand struct {
	api          api.API
	renderer     *Renderer
	errorHandler *ErrorHandler
}

// NewColorsCommand creates a new colors command handler
func NewColorsCommand(app *App) *ColorsCommand {
	return &ColorsCommand{
		api:          app.api,
		renderer:     NewRenderer(app.out, app.registry, app.dateFormat()),
		errorHandler: NewErrorHandler(),
	}
}

// List shows the configured status colors
func (c *ColorsCommand) List(ctx context.Context) error {
	colors, err := c.api.StatusColors(ctx)
	if err != nil {
		return c.errorHandler.Handle("load status colors", err)
	}

	order := make([]string, 0, len(colors))
	for name := range colors {
		order = append(order, name)
	}
	sort.Strings(order)

	c.renderer.Colors(colors, order)
	return nil
}

// Set overrides one status color for this session. The remote
// configuration table is never written.
func (c *ColorsCommand) Set(ctx context.Context, name, hex string) error {
	if err := c.api.SetStatusColor(name, hex); err != nil {
		return c.errorHandler.Handle("set status color", err)
	}

	fmt.Fprintf(c.renderer.out, "Status %q now renders as %s (this session only)\n", name, hex)
	return nil
}
