package cli

import (
	"context"
	"fmt"
	"time"

	"taskboard/internal/api"
)

// TaskCommand handles the task command group
type TaskCommand struct {
	api          api.API
	renderer     *Renderer
	errorHandler *ErrorHandler
}

// TaskFlags carries the task add/edit flag values
type TaskFlags struct {
	Description string
	Status      string
	Client      string
	Priority    string
	DueDate     string
}

// NewTaskCommand creates a new task command handler
func NewTaskCommand(app *App) *TaskCommand {
	return &TaskCommand{
		api:          app.api,
		renderer:     NewRenderer(app.out, app.registry, app.dateFormat()),
		errorHandler: NewErrorHandler(),
	}
}

// Add creates a new task
func (c *TaskCommand) Add(ctx context.Context, name string, flags TaskFlags) error {
	task, err := c.api.CreateTask(ctx, api.NewTaskInput{
		Name:        name,
		Description: flags.Description,
		Status:      flags.Status,
		Client:      flags.Client,
		Priority:    flags.Priority,
		DueDate:     flags.DueDate,
	})
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}

	fmt.Fprintf(c.renderer.out, "Added task: %s (%s)\n", task.Name, task.ID)
	return nil
}

// Edit updates the provided fields of an existing task
func (c *TaskCommand) Edit(ctx context.Context, id, name string, flags TaskFlags) error {
	task, err := c.api.GetTask(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("load task", err)
	}

	if name != "" {
		task.Name = name
	}
	if flags.Description != "" {
		task.Description = flags.Description
	}
	if flags.Status != "" {
		task.Status = flags.Status
	}
	if flags.Client != "" {
		task.Client = flags.Client
	}
	if flags.Priority != "" {
		task.Priority = flags.Priority
	}
	if flags.DueDate != "" {
		due, parseErr := time.ParseInLocation("2006-01-02", flags.DueDate, time.Local)
		if parseErr != nil {
			return fmt.Errorf("invalid --due value %q: use 2006-01-02", flags.DueDate)
		}
		task.DueDate = &due
	}

	if err := c.api.UpdateTask(ctx, *task); err != nil {
		return c.errorHandler.Handle("update task", err)
	}

	fmt.Fprintf(c.renderer.out, "Updated task: %s\n", task.Name)
	return nil
}

// Show prints one task in detail
func (c *TaskCommand) Show(ctx context.Context, id string) error {
	task, err := c.api.GetTask(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("load task", err)
	}

	c.renderer.Task(*task)
	return nil
}
