package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"taskboard/internal/api"
)

// ClientsCommand handles the clients command group
type ClientsCommand struct {
	api          api.API
	renderer     *Renderer
	errorHandler *ErrorHandler
}

// NewClientsCommand creates a new clients command handler
func NewClientsCommand(app *App) *ClientsCommand {
	return &ClientsCommand{
		api:          app.api,
		renderer:     NewRenderer(app.out, app.registry, app.dateFormat()),
		errorHandler: NewErrorHandler(),
	}
}

// List shows all clients sorted by pipeline position, pinned first
func (c *ClientsCommand) List(ctx context.Context) error {
	clients, err := c.api.Clients(ctx)
	if err != nil {
		return c.errorHandler.Handle("list clients", err)
	}

	sort.SliceStable(clients, func(i, j int) bool {
		if clients[i].Pinned != clients[j].Pinned {
			return clients[i].Pinned
		}
		if clients[i].StageOrder != clients[j].StageOrder {
			return clients[i].StageOrder < clients[j].StageOrder
		}
		return clients[i].Name < clients[j].Name
	})

	c.renderer.Clients(clients)
	return nil
}

// Add creates a new client, optionally placing it in a lifecycle stage
func (c *ClientsCommand) Add(ctx context.Context, name, stage string) error {
	stageID, err := c.resolveStage(ctx, stage)
	if err != nil {
		return err
	}

	client, err := c.api.CreateClient(ctx, name, stageID)
	if err != nil {
		return c.errorHandler.Handle("add client", err)
	}

	fmt.Fprintf(c.renderer.out, "Added client: %s (%s)\n", client.Name, client.ID)
	return nil
}

// SetStage moves a client to another lifecycle stage
func (c *ClientsCommand) SetStage(ctx context.Context, id, stage string) error {
	stageID, err := c.resolveStage(ctx, stage)
	if err != nil {
		return err
	}

	if err := c.api.UpdateClientStage(ctx, id, stageID); err != nil {
		return c.errorHandler.Handle("move client", err)
	}
	fmt.Fprintln(c.renderer.out, "Client moved")
	return nil
}

// SetStatus changes a client's status
func (c *ClientsCommand) SetStatus(ctx context.Context, id, clientStatus string) error {
	if err := c.api.UpdateClientStatus(ctx, id, clientStatus); err != nil {
		return c.errorHandler.Handle("update client status", err)
	}
	fmt.Fprintln(c.renderer.out, "Client status updated")
	return nil
}

// Pin toggles whether a client stays visible with zero open tasks
func (c *ClientsCommand) Pin(ctx context.Context, id, value string) error {
	pinned := true
	if value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid pin value %q: use true or false", value)
		}
		pinned = parsed
	}

	if err := c.api.UpdateClientPinned(ctx, id, pinned); err != nil {
		return c.errorHandler.Handle("pin client", err)
	}
	if pinned {
		fmt.Fprintln(c.renderer.out, "Client pinned")
	} else {
		fmt.Fprintln(c.renderer.out, "Client unpinned")
	}
	return nil
}

// SetOwner assigns a client to a team member
func (c *ClientsCommand) SetOwner(ctx context.Context, id, ownerID string) error {
	if err := c.api.UpdateClientOwner(ctx, id, ownerID); err != nil {
		return c.errorHandler.Handle("assign client owner", err)
	}
	fmt.Fprintln(c.renderer.out, "Client owner updated")
	return nil
}

// resolveStage accepts a stage record id or a stage name. Empty stays
// empty, leaving the client unplaced.
func (c *ClientsCommand) resolveStage(ctx context.Context, stage string) (string, error) {
	if stage == "" || strings.HasPrefix(stage, "rec") {
		return stage, nil
	}

	stages, err := c.api.LifecycleStages(ctx)
	if err != nil {
		return "", c.errorHandler.Handle("load lifecycle stages", err)
	}
	for _, s := range stages {
		if strings.EqualFold(s.Name, stage) {
			return s.ID, nil
		}
	}
	return "", fmt.Errorf("unknown lifecycle stage: %s", stage)
}
