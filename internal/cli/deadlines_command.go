package cli

import (
	"context"
	"fmt"
	"strings"

	"taskboard/internal/api"
	"taskboard/internal/views"
)

// DeadlinesCommand handles the deadlines command
type DeadlinesCommand struct {
	api          api.API
	renderer     *Renderer
	errorHandler *ErrorHandler
}

// DeadlineFlags carries the deadlines command's flag values
type DeadlineFlags struct {
	Owner        string
	Due          string
	ShowClosed   bool
	StatusPreset string
}

// NewDeadlinesCommand creates a new deadlines command handler
func NewDeadlinesCommand(app *App) *DeadlinesCommand {
	return &DeadlinesCommand{
		api:          app.api,
		renderer:     NewRenderer(app.out, app.registry, app.dateFormat()),
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the deadlines command
func (c *DeadlinesCommand) Execute(ctx context.Context, flags DeadlineFlags) error {
	due, err := parseDateFilter(flags.Due)
	if err != nil {
		return err
	}

	ownerID := flags.Owner
	if ownerID != "" && !strings.HasPrefix(ownerID, "rec") {
		// Accept an owner name and resolve it to an id.
		ownerID, err = c.resolveOwner(ctx, flags.Owner)
		if err != nil {
			return err
		}
	}

	deadlines, err := c.api.Deadlines(ctx, api.DeadlineOptions{
		StatusPreset: flags.StatusPreset,
		ShowClosed:   flags.ShowClosed,
		OwnerID:      ownerID,
		Due:          due,
		Now:          timeNow(),
	})
	if err != nil {
		return c.errorHandler.Handle("load deadlines", err)
	}

	c.renderer.Deadlines(deadlines)
	return nil
}

func (c *DeadlinesCommand) resolveOwner(ctx context.Context, name string) (string, error) {
	owners, err := c.api.Owners(ctx)
	if err != nil {
		return "", c.errorHandler.Handle("load team members", err)
	}
	for _, owner := range owners {
		if strings.EqualFold(owner.Name, name) {
			return owner.ID, nil
		}
	}
	return "", fmt.Errorf("unknown team member: %s", name)
}

func parseDateFilter(due string) (views.DateFilter, error) {
	switch strings.ToLower(due) {
	case "", "all":
		return views.DateAll, nil
	case "today":
		return views.DateToday, nil
	case "week":
		return views.DateThisWeek, nil
	case "month":
		return views.DateThisMonth, nil
	case "overdue":
		return views.DateOverdue, nil
	}
	return "", fmt.Errorf("invalid --due value %q: use today, week, month or overdue", due)
}
