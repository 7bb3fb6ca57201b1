package cli

import (
	"context"

	"taskboard/internal/api"
)

// BoardCommand handles the board command
type BoardCommand struct {
	api          api.API
	renderer     *Renderer
	errorHandler *ErrorHandler
}

// BoardFlags carries the board command's flag values
type BoardFlags struct {
	ShowClosed   bool
	StatusPreset string
	OwnerID      string
}

// NewBoardCommand creates a new board command handler
func NewBoardCommand(app *App) *BoardCommand {
	return &BoardCommand{
		api:          app.api,
		renderer:     NewRenderer(app.out, app.registry, app.dateFormat()),
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the board command
func (c *BoardCommand) Execute(ctx context.Context, flags BoardFlags) error {
	groups, err := c.api.Board(ctx, api.BoardOptions{
		StatusPreset: flags.StatusPreset,
		ShowClosed:   flags.ShowClosed,
		OwnerID:      flags.OwnerID,
	})
	if err != nil {
		return c.errorHandler.Handle("load board", err)
	}

	c.renderer.Board(groups)
	return nil
}
