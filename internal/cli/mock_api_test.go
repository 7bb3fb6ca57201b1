package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"taskboard/internal/api"
	"taskboard/internal/config"
	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/status"
	"taskboard/internal/views"
)

// mockAPI implements the api.API interface for testing
type mockAPI struct {
	tasks   map[string]*domain.Task
	clients map[string]*domain.Client
	stages  []domain.LifecycleStage
	owners  []domain.Owner
	colors  map[string]string
	nextID  int

	// failNext, when non-nil, is returned by the next operation and
	// then cleared
	failNext error

	refreshed [][]string
}

func newMockAPI() *mockAPI {
	return &mockAPI{
		tasks:   make(map[string]*domain.Task),
		clients: make(map[string]*domain.Client),
		colors:  make(map[string]string),
	}
}

func (m *mockAPI) takeFailure() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func (m *mockAPI) newID() string {
	m.nextID++
	return fmt.Sprintf("rec%06d", m.nextID)
}

func (m *mockAPI) addTask(name, taskStatus, client string, due *time.Time) *domain.Task {
	task := &domain.Task{ID: m.newID(), Name: name, Status: taskStatus, Client: client, DueDate: due}
	if task.Client == "" {
		task.Client = domain.UnassignedClient
	}
	m.tasks[task.ID] = task
	return task
}

func (m *mockAPI) addClient(name, stageName string, order int) *domain.Client {
	client := &domain.Client{ID: m.newID(), Name: name, LifecycleStageName: stageName, StageOrder: order}
	m.clients[client.ID] = client
	return client
}

func (m *mockAPI) taskSlice() []domain.Task {
	out := make([]domain.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		out = append(out, *task)
	}
	return out
}

func (m *mockAPI) clientSlice() []domain.Client {
	out := make([]domain.Client, 0, len(m.clients))
	for _, client := range m.clients {
		out = append(out, *client)
	}
	return out
}

func (m *mockAPI) Board(ctx context.Context, opts api.BoardOptions) ([]views.StageGroup, error) {
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	idx := views.NewClientIndex(m.clientSlice(), m.stages)
	groups := views.GroupByStageAndClient(m.taskSlice(), idx, nil)
	return views.OrderStages(groups, m.stages), nil
}

func (m *mockAPI) Deadlines(ctx context.Context, opts api.DeadlineOptions) ([]api.DeadlineTask, error) {
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	sorted := views.SortByDueDate(views.FilterTasks(m.taskSlice(), views.FilterOptions{
		OwnerID:    opts.OwnerID,
		DateFilter: opts.Due,
		Now:        opts.Now,
	}))
	out := make([]api.DeadlineTask, 0, len(sorted))
	for _, task := range sorted {
		out = append(out, api.DeadlineTask{Task: task})
	}
	return out, nil
}

func (m *mockAPI) Clients(ctx context.Context) ([]domain.Client, error) {
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	return m.clientSlice(), nil
}

func (m *mockAPI) LifecycleStages(ctx context.Context) ([]domain.LifecycleStage, error) {
	return m.stages, nil
}

func (m *mockAPI) Owners(ctx context.Context) ([]domain.Owner, error) {
	return m.owners, nil
}

func (m *mockAPI) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	task, ok := m.tasks[id]
	if !ok {
		return nil, errors.NewNotFoundError("task", id)
	}
	copied := *task
	return &copied, nil
}

func (m *mockAPI) CreateTask(ctx context.Context, input api.NewTaskInput) (*domain.Task, error) {
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	var due *time.Time
	if input.DueDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", input.DueDate, time.Local)
		if err != nil {
			return nil, err
		}
		due = &parsed
	}
	return m.addTask(input.Name, input.Status, input.Client, due), nil
}

func (m *mockAPI) UpdateTask(ctx context.Context, task domain.Task) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	if _, ok := m.tasks[task.ID]; !ok {
		return errors.NewNotFoundError("task", task.ID)
	}
	stored := task
	m.tasks[task.ID] = &stored
	return nil
}

func (m *mockAPI) CreateClient(ctx context.Context, name, stageID string) (*domain.Client, error) {
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	return m.addClient(name, "", 0), nil
}

func (m *mockAPI) UpdateClientFields(ctx context.Context, id string, patch domain.ClientPatch) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	client, ok := m.clients[id]
	if !ok {
		return errors.NewNotFoundError("client", id)
	}
	if patch.Status != nil {
		client.Status = *patch.Status
	}
	if patch.LifecycleStageID != nil {
		client.LifecycleStageID = *patch.LifecycleStageID
	}
	if patch.Pinned != nil {
		client.Pinned = *patch.Pinned
	}
	if patch.OwnerID != nil {
		client.OwnerID = *patch.OwnerID
	}
	return nil
}

func (m *mockAPI) UpdateClientStatus(ctx context.Context, id, clientStatus string) error {
	return m.UpdateClientFields(ctx, id, domain.ClientPatch{Status: &clientStatus})
}

func (m *mockAPI) UpdateClientStage(ctx context.Context, id, stageID string) error {
	return m.UpdateClientFields(ctx, id, domain.ClientPatch{LifecycleStageID: &stageID})
}

func (m *mockAPI) UpdateClientPinned(ctx context.Context, id string, pinned bool) error {
	return m.UpdateClientFields(ctx, id, domain.ClientPatch{Pinned: &pinned})
}

func (m *mockAPI) UpdateClientOwner(ctx context.Context, id, ownerID string) error {
	return m.UpdateClientFields(ctx, id, domain.ClientPatch{OwnerID: &ownerID})
}

func (m *mockAPI) StatusColors(ctx context.Context) (map[string]string, error) {
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(m.colors))
	for name, hex := range m.colors {
		out[name] = hex
	}
	return out, nil
}

func (m *mockAPI) SetStatusColor(name, hex string) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	m.colors[name] = hex
	return nil
}

func (m *mockAPI) Refresh(ctx context.Context, keys ...string) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	m.refreshed = append(m.refreshed, keys)
	return nil
}

// setupTestApp builds an App over the mock API, capturing output
func setupTestApp(t *testing.T) (*App, *mockAPI, *bytes.Buffer) {
	t.Helper()
	mock := newMockAPI()
	out := &bytes.Buffer{}
	cfg := config.NewConfig()
	app := NewAppWithWriter(mock, status.NewRegistry(), cfg, out)
	return app, mock, out
}
