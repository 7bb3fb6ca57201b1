package airtable

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskboard/internal/errors"
)

// MemoryStore is an in-memory Store implementation used by the testing
// factory and by tests that need a remote store without a network.
type MemoryStore struct {
	mu     sync.Mutex
	tasks  map[string]*Task
	client map[string]*Client
	stages map[string]*LifecycleStage
	owners map[string]*Owner
	colors map[string]string
	nextID int

	// FailNext, when non-nil, is returned by the next store call and then
	// cleared. Lets tests exercise failure and revert paths.
	FailNext error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks:  make(map[string]*Task),
		client: make(map[string]*Client),
		stages: make(map[string]*LifecycleStage),
		owners: make(map[string]*Owner),
		colors: make(map[string]string),
	}
}

func (m *MemoryStore) newID() string {
	m.nextID++
	return fmt.Sprintf("rec%06d", m.nextID)
}

func (m *MemoryStore) takeFailure() error {
	err := m.FailNext
	m.FailNext = nil
	return err
}

// SeedTask inserts a task directly, assigning an id when absent.
func (m *MemoryStore) SeedTask(task *Task) *Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task.ID == "" {
		task.ID = m.newID()
	}
	if task.Client == "" {
		task.Client = "Unassigned"
	}
	m.tasks[task.ID] = task
	return task
}

// SeedClient inserts a client directly, assigning an id when absent.
func (m *MemoryStore) SeedClient(client *Client) *Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	if client.ID == "" {
		client.ID = m.newID()
	}
	m.client[client.ID] = client
	return client
}

// SeedStage inserts a lifecycle stage directly.
func (m *MemoryStore) SeedStage(stage *LifecycleStage) *LifecycleStage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if stage.ID == "" {
		stage.ID = m.newID()
	}
	m.stages[stage.ID] = stage
	return stage
}

// SeedOwner inserts a team member directly.
func (m *MemoryStore) SeedOwner(owner *Owner) *Owner {
	m.mu.Lock()
	defer m.mu.Unlock()
	if owner.ID == "" {
		owner.ID = m.newID()
	}
	m.owners[owner.ID] = owner
	return owner
}

// SeedStatusColor inserts one color-configuration entry.
func (m *MemoryStore) SeedStatusColor(status, hex string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.colors[status] = NormalizeHex(hex)
}

// ListTasks returns all seeded tasks.
func (m *MemoryStore) ListTasks(ctx context.Context) ([]*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	out := make([]*Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		copied := *task
		out = append(out, &copied)
	}
	return out, nil
}

// GetTask returns one task by id.
func (m *MemoryStore) GetTask(ctx context.Context, id string) (*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, errors.NewNotFoundError("task", id)
	}
	copied := *task
	return &copied, nil
}

// CreateTask stores a new task and assigns it an id.
func (m *MemoryStore) CreateTask(ctx context.Context, task *Task) (*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	stored := *task
	stored.ID = m.newID()
	if stored.Client == "" {
		stored.Client = "Unassigned"
	}
	m.tasks[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

// UpdateTask overwrites an existing task.
func (m *MemoryStore) UpdateTask(ctx context.Context, task *Task) (*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	if _, ok := m.tasks[task.ID]; !ok {
		return nil, errors.NewNotFoundError("task", task.ID)
	}
	stored := *task
	m.tasks[task.ID] = &stored
	copied := stored
	return &copied, nil
}

// ListClients returns all seeded clients with stage labels attached.
func (m *MemoryStore) ListClients(ctx context.Context) ([]*Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	out := make([]*Client, 0, len(m.client))
	for _, client := range m.client {
		copied := *client
		if len(copied.StageIDs) > 0 {
			if stage, ok := m.stages[copied.StageIDs[0]]; ok {
				copied.StageName = stage.Name
				copied.StageOrder = stage.Order
			}
		}
		out = append(out, &copied)
	}
	return out, nil
}

// CreateClient stores a new client.
func (m *MemoryStore) CreateClient(ctx context.Context, name, stageID string) (*Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	client := &Client{
		ID:          m.newID(),
		Name:        name,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
	if stageID != "" {
		client.StageIDs = []string{stageID}
	}
	m.client[client.ID] = client
	copied := *client
	return &copied, nil
}

// PatchClientFields applies a partial update to a stored client.
func (m *MemoryStore) PatchClientFields(ctx context.Context, id string, patch ClientPatch) (*Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	client, ok := m.client[id]
	if !ok {
		return nil, errors.NewNotFoundError("client", id)
	}
	if patch.Status != nil {
		client.Status = titleCase(*patch.Status)
	}
	if patch.StageID != nil {
		if *patch.StageID == "" {
			client.StageIDs = nil
		} else {
			client.StageIDs = []string{*patch.StageID}
		}
	}
	if patch.Pinned != nil {
		client.Pinned = *patch.Pinned
	}
	if patch.OwnerID != nil {
		if *patch.OwnerID == "" {
			client.OwnerIDs = nil
		} else {
			client.OwnerIDs = []string{*patch.OwnerID}
		}
	}
	client.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	copied := *client
	return &copied, nil
}

// UpdateClientStatus writes the client's free-text status.
func (m *MemoryStore) UpdateClientStatus(ctx context.Context, id, status string) (*Client, error) {
	return m.PatchClientFields(ctx, id, ClientPatch{Status: &status})
}

// UpdateClientLifecycleStage writes the client's stage reference.
func (m *MemoryStore) UpdateClientLifecycleStage(ctx context.Context, id, stageID string) (*Client, error) {
	return m.PatchClientFields(ctx, id, ClientPatch{StageID: &stageID})
}

// UpdateClientPinned writes the client's pinned flag.
func (m *MemoryStore) UpdateClientPinned(ctx context.Context, id string, pinned bool) (*Client, error) {
	return m.PatchClientFields(ctx, id, ClientPatch{Pinned: &pinned})
}

// UpdateClientOwner writes the client's assigned owner.
func (m *MemoryStore) UpdateClientOwner(ctx context.Context, id, ownerID string) (*Client, error) {
	return m.PatchClientFields(ctx, id, ClientPatch{OwnerID: &ownerID})
}

// ListLifecycleStages returns all seeded stages.
func (m *MemoryStore) ListLifecycleStages(ctx context.Context) ([]*LifecycleStage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*LifecycleStage, 0, len(m.stages))
	for _, stage := range m.stages {
		copied := *stage
		out = append(out, &copied)
	}
	return out, nil
}

// ListOwners returns all seeded team members.
func (m *MemoryStore) ListOwners(ctx context.Context) ([]*Owner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Owner, 0, len(m.owners))
	for _, owner := range m.owners {
		copied := *owner
		out = append(out, &copied)
	}
	return out, nil
}

// GetOwnersByIDs returns the seeded owners matching the deduplicated ids,
// silently omitting unknown ids.
func (m *MemoryStore) GetOwnersByIDs(ctx context.Context, ids []string) ([]*Owner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Owner, 0, len(ids))
	for _, id := range dedupe(ids) {
		if owner, ok := m.owners[id]; ok {
			copied := *owner
			out = append(out, &copied)
		}
	}
	return out, nil
}

// FetchStatusColors returns the seeded color mapping.
func (m *MemoryStore) FetchStatusColors(ctx context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(m.colors))
	for status, hex := range m.colors {
		out[status] = hex
	}
	return out, nil
}
