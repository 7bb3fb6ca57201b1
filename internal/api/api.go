// Package api is the facade the presentation layer talks to. It wires the
// remote store, the keyed cache, the mappers and the derived-view builders
// into one interface, so commands never touch the wire or the cache
// directly.
package api

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/airtable"
	"taskboard/internal/cache"
	"taskboard/internal/domain"
	"taskboard/internal/status"
	"taskboard/internal/validation"
	"taskboard/internal/views"
)

// BoardOptions selects what the grouped board view shows.
type BoardOptions struct {
	// StatusPreset names an excluded-status preset; empty means the
	// default (hide completed tasks).
	StatusPreset string
	// ShowClosed disables the excluded-status filter.
	ShowClosed bool
	// OwnerID narrows the board to one owner's tasks.
	OwnerID string
}

// DeadlineOptions selects what the deadline view shows.
type DeadlineOptions struct {
	StatusPreset string
	ShowClosed   bool
	OwnerID      string
	Due          views.DateFilter
	// Now anchors the date filters. Zero means time.Now.
	Now time.Time
}

// DeadlineTask is a task with its owners resolved for display.
type DeadlineTask struct {
	Task   domain.Task
	Owners []domain.Owner
}

// NewTaskInput carries the user-supplied fields of a task to create.
type NewTaskInput struct {
	Name        string
	Description string
	Status      string
	Client      string
	Priority    string
	// DueDate in 2006-01-02 form; empty means none.
	DueDate string
}

// API defines the interface for all board, deadline and write operations.
type API interface {
	// Read views
	Board(ctx context.Context, opts BoardOptions) ([]views.StageGroup, error)
	Deadlines(ctx context.Context, opts DeadlineOptions) ([]DeadlineTask, error)
	Clients(ctx context.Context) ([]domain.Client, error)
	LifecycleStages(ctx context.Context) ([]domain.LifecycleStage, error)
	Owners(ctx context.Context) ([]domain.Owner, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)

	// Task writes
	CreateTask(ctx context.Context, input NewTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, task domain.Task) error

	// Client writes
	CreateClient(ctx context.Context, name, stageID string) (*domain.Client, error)
	UpdateClientFields(ctx context.Context, id string, patch domain.ClientPatch) error
	UpdateClientStatus(ctx context.Context, id, clientStatus string) error
	UpdateClientStage(ctx context.Context, id, stageID string) error
	UpdateClientPinned(ctx context.Context, id string, pinned bool) error
	UpdateClientOwner(ctx context.Context, id, ownerID string) error

	// Status colors
	StatusColors(ctx context.Context) (map[string]string, error)
	SetStatusColor(name, hex string) error

	// Cache control
	Refresh(ctx context.Context, keys ...string) error
}

type apiImpl struct {
	store           airtable.Store
	cache           *cache.Store
	registry        *status.Registry
	mapper          *domain.Mapper
	taskValidator   *validation.TaskValidator
	clientValidator *validation.ClientValidator
}

// New creates a new API instance and registers the resource fetchers on
// the cache.
func New(store airtable.Store, cacheStore *cache.Store, registry *status.Registry) API {
	a := &apiImpl{
		store:           store,
		cache:           cacheStore,
		registry:        registry,
		mapper:          domain.NewMapper(),
		taskValidator:   validation.NewTaskValidator(),
		clientValidator: validation.NewClientValidator(),
	}

	cacheStore.Register(cache.KeyTasks, func(ctx context.Context) (interface{}, error) {
		remotes, err := store.ListTasks(ctx)
		if err != nil {
			return nil, err
		}
		return a.mapper.Task.FromRemoteSlice(remotes), nil
	})
	cacheStore.Register(cache.KeyClients, func(ctx context.Context) (interface{}, error) {
		remotes, err := store.ListClients(ctx)
		if err != nil {
			return nil, err
		}
		return a.mapper.Client.FromRemoteSlice(remotes), nil
	})
	cacheStore.Register(cache.KeyLifecycleStages, func(ctx context.Context) (interface{}, error) {
		remotes, err := store.ListLifecycleStages(ctx)
		if err != nil {
			return nil, err
		}
		return a.mapper.Stage.FromRemoteSlice(remotes), nil
	})
	cacheStore.Register(cache.KeyOwners, func(ctx context.Context) (interface{}, error) {
		remotes, err := store.ListOwners(ctx)
		if err != nil {
			return nil, err
		}
		return a.mapper.Owner.FromRemoteSlice(remotes), nil
	})

	return a
}

func (a *apiImpl) cachedTasks(ctx context.Context) ([]domain.Task, error) {
	v, err := a.cache.Get(ctx, cache.KeyTasks)
	if err != nil {
		return nil, err
	}
	return v.([]domain.Task), nil
}

func (a *apiImpl) cachedClients(ctx context.Context) ([]domain.Client, error) {
	v, err := a.cache.Get(ctx, cache.KeyClients)
	if err != nil {
		return nil, err
	}
	return v.([]domain.Client), nil
}

func (a *apiImpl) cachedStages(ctx context.Context) ([]domain.LifecycleStage, error) {
	v, err := a.cache.Get(ctx, cache.KeyLifecycleStages)
	if err != nil {
		return nil, err
	}
	return v.([]domain.LifecycleStage), nil
}

// excludedFor resolves a preset name, falling back to the default set.
func excludedFor(preset string) []string {
	if statuses, ok := views.ExcludedStatusPresets[preset]; ok {
		return statuses
	}
	return views.DefaultExcludedStatuses
}

func (a *apiImpl) Board(ctx context.Context, opts BoardOptions) ([]views.StageGroup, error) {
	tasks, err := a.cachedTasks(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := a.cachedClients(ctx)
	if err != nil {
		return nil, err
	}
	stages, err := a.cachedStages(ctx)
	if err != nil {
		return nil, err
	}

	visible := views.FilterTasks(tasks, views.FilterOptions{
		ExcludedStatuses: excludedFor(opts.StatusPreset),
		ShowClosed:       opts.ShowClosed,
		OwnerID:          opts.OwnerID,
	})

	idx := views.NewClientIndex(clients, stages)
	var pinned []domain.Client
	for _, client := range clients {
		if client.Pinned {
			pinned = append(pinned, client)
		}
	}

	groups := views.GroupByStageAndClient(visible, idx, pinned)
	return views.OrderStages(groups, stages), nil
}

func (a *apiImpl) Deadlines(ctx context.Context, opts DeadlineOptions) ([]DeadlineTask, error) {
	tasks, err := a.cachedTasks(ctx)
	if err != nil {
		return nil, err
	}

	visible := views.FilterTasks(tasks, views.FilterOptions{
		ExcludedStatuses: excludedFor(opts.StatusPreset),
		ShowClosed:       opts.ShowClosed,
		OwnerID:          opts.OwnerID,
		DateFilter:       opts.Due,
		Now:              opts.Now,
	})
	visible = views.SortByDueDate(visible)

	// One batch lookup for every owner that appears; failed ids are
	// omitted by the store, so the view renders without them.
	var ownerIDs []string
	for _, task := range visible {
		ownerIDs = append(ownerIDs, task.OwnerIDs...)
	}
	byID := make(map[string]domain.Owner)
	if len(ownerIDs) > 0 {
		remotes, err := a.store.GetOwnersByIDs(ctx, ownerIDs)
		if err != nil {
			return nil, err
		}
		for _, owner := range a.mapper.Owner.FromRemoteSlice(remotes) {
			byID[owner.ID] = owner
		}
	}

	result := make([]DeadlineTask, 0, len(visible))
	for _, task := range visible {
		entry := DeadlineTask{Task: task}
		for _, id := range task.OwnerIDs {
			if owner, ok := byID[id]; ok {
				entry.Owners = append(entry.Owners, owner)
			}
		}
		result = append(result, entry)
	}
	return result, nil
}

func (a *apiImpl) Clients(ctx context.Context) ([]domain.Client, error) {
	return a.cachedClients(ctx)
}

func (a *apiImpl) LifecycleStages(ctx context.Context) ([]domain.LifecycleStage, error) {
	return a.cachedStages(ctx)
}

func (a *apiImpl) Owners(ctx context.Context) ([]domain.Owner, error) {
	v, err := a.cache.Get(ctx, cache.KeyOwners)
	if err != nil {
		return nil, err
	}
	return v.([]domain.Owner), nil
}

func (a *apiImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := a.taskValidator.ValidateTaskID(id); err != nil {
		return nil, err
	}

	// Prefer the cached collection; fall back to a point read.
	if tasks, err := a.cachedTasks(ctx); err == nil {
		for _, task := range tasks {
			if task.ID == id {
				found := task
				return &found, nil
			}
		}
	}

	remote, err := a.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	task := a.mapper.Task.FromRemote(*remote)
	return &task, nil
}

func (a *apiImpl) CreateTask(ctx context.Context, input NewTaskInput) (*domain.Task, error) {
	if err := a.taskValidator.ValidateTaskForCreation(input.Name, input.DueDate); err != nil {
		return nil, err
	}
	cleanedName, err := a.taskValidator.GetValidTaskName(input.Name)
	if err != nil {
		return nil, err
	}

	task := domain.NewTask(cleanedName, input.Client)
	task.Description = input.Description
	task.Status = input.Status
	task.Priority = input.Priority
	if input.DueDate != "" {
		if due, parseErr := time.ParseInLocation("2006-01-02", input.DueDate, time.Local); parseErr == nil {
			task.DueDate = &due
		}
	}

	// The placeholder id keeps the optimistic row addressable until the
	// stored record replaces it on revalidation.
	placeholder := task
	placeholder.ID = "tmp-" + uuid.NewString()

	var created *airtable.Task
	err = a.cache.Optimistic(ctx, cache.KeyTasks,
		func(current interface{}) interface{} {
			tasks, _ := current.([]domain.Task)
			next := make([]domain.Task, len(tasks), len(tasks)+1)
			copy(next, tasks)
			return append(next, placeholder)
		},
		func(ctx context.Context) error {
			remote := a.mapper.Task.ToRemote(task)
			var writeErr error
			created, writeErr = a.store.CreateTask(ctx, &remote)
			return writeErr
		})
	if err != nil {
		return nil, err
	}

	// Revalidate so the placeholder gives way to the stored record.
	if _, err := a.cache.Mutate(ctx, cache.KeyTasks); err != nil {
		return nil, err
	}

	stored := a.mapper.Task.FromRemote(*created)
	return &stored, nil
}

func (a *apiImpl) UpdateTask(ctx context.Context, task domain.Task) error {
	if err := a.taskValidator.ValidateTaskID(task.ID); err != nil {
		return err
	}
	if err := a.taskValidator.ValidateTaskName(task.Name); err != nil {
		return err
	}

	return a.cache.Optimistic(ctx, cache.KeyTasks,
		func(current interface{}) interface{} {
			tasks, _ := current.([]domain.Task)
			next := make([]domain.Task, len(tasks))
			copy(next, tasks)
			for i := range next {
				if next[i].ID == task.ID {
					next[i] = task
				}
			}
			return next
		},
		func(ctx context.Context) error {
			remote := a.mapper.Task.ToRemote(task)
			_, writeErr := a.store.UpdateTask(ctx, &remote)
			return writeErr
		})
}

func (a *apiImpl) CreateClient(ctx context.Context, name, stageID string) (*domain.Client, error) {
	if err := a.clientValidator.ValidateClientName(name); err != nil {
		return nil, err
	}

	remote, err := a.store.CreateClient(ctx, name, stageID)
	if err != nil {
		return nil, err
	}
	if _, err := a.cache.Mutate(ctx, cache.KeyClients); err != nil {
		return nil, err
	}

	client := a.mapper.Client.FromRemote(*remote)
	return &client, nil
}

// UpdateClientFields is the single partial-update path for clients; the
// per-field operations below delegate to it.
func (a *apiImpl) UpdateClientFields(ctx context.Context, id string, patch domain.ClientPatch) error {
	if err := a.clientValidator.ValidateClientID(id); err != nil {
		return err
	}
	if patch.IsEmpty() {
		validationError := validation.NewValidationError()
		validationError.AddRequiredError("client_patch")
		return validationError
	}

	return a.cache.Optimistic(ctx, cache.KeyClients,
		func(current interface{}) interface{} {
			clients, _ := current.([]domain.Client)
			next := make([]domain.Client, len(clients))
			copy(next, clients)
			for i := range next {
				if next[i].ID == id {
					applyPatch(&next[i], patch)
				}
			}
			return next
		},
		func(ctx context.Context) error {
			_, writeErr := a.store.PatchClientFields(ctx, id, a.mapper.Client.PatchToRemote(patch))
			return writeErr
		})
}

func applyPatch(client *domain.Client, patch domain.ClientPatch) {
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
}

func (a *apiImpl) UpdateClientStatus(ctx context.Context, id, clientStatus string) error {
	return a.UpdateClientFields(ctx, id, domain.ClientPatch{Status: &clientStatus})
}

func (a *apiImpl) UpdateClientStage(ctx context.Context, id, stageID string) error {
	return a.UpdateClientFields(ctx, id, domain.ClientPatch{LifecycleStageID: &stageID})
}

func (a *apiImpl) UpdateClientPinned(ctx context.Context, id string, pinned bool) error {
	return a.UpdateClientFields(ctx, id, domain.ClientPatch{Pinned: &pinned})
}

func (a *apiImpl) UpdateClientOwner(ctx context.Context, id, ownerID string) error {
	return a.UpdateClientFields(ctx, id, domain.ClientPatch{OwnerID: &ownerID})
}

func (a *apiImpl) StatusColors(ctx context.Context) (map[string]string, error) {
	if !a.registry.Loaded() {
		if err := a.registry.Load(ctx, a.store); err != nil {
			return nil, err
		}
	}
	return a.registry.All(), nil
}

// SetStatusColor changes a color for this session only; edits are never
// written back to the remote store.
func (a *apiImpl) SetStatusColor(name, hex string) error {
	if err := a.clientValidator.ValidateHexColor(hex); err != nil {
		return err
	}
	a.registry.SetColor(name, hex)
	return nil
}

func (a *apiImpl) Refresh(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		keys = []string{cache.KeyTasks, cache.KeyClients, cache.KeyLifecycleStages, cache.KeyOwners}
	}
	for _, key := range keys {
		if _, err := a.cache.Mutate(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
