package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/airtable"
	"taskboard/internal/cache"
	"taskboard/internal/domain"
	"taskboard/internal/status"
	"taskboard/internal/validation"
	"taskboard/internal/views"
)

type fixture struct {
	api   API
	store *airtable.MemoryStore
	cache *cache.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := airtable.NewMemoryStore()
	cacheStore := cache.NewStore(cache.Options{DedupeInterval: time.Minute, RefreshInterval: -1})
	registry := status.NewRegistry()
	return &fixture{
		api:   New(store, cacheStore, registry),
		store: store,
		cache: cacheStore,
	}
}

func (f *fixture) seedPipeline(t *testing.T) {
	t.Helper()
	f.store.SeedStage(&airtable.LifecycleStage{Name: "Onboarding", Order: 1})
	live := f.store.SeedStage(&airtable.LifecycleStage{Name: "Live Client", Order: 2})
	f.store.SeedClient(&airtable.Client{Name: "Acme", Status: "Active", StageIDs: []string{live.ID}})
	f.store.SeedTask(&airtable.Task{Name: "Renewal call", Status: "In Progress", Client: "Acme"})
	f.store.SeedTask(&airtable.Task{Name: "Send summary", Status: "Completed", Client: "Acme"})
}

func TestBoardGroupsAndFilters(t *testing.T) {
	f := newFixture(t)
	f.seedPipeline(t)
	f.store.SeedTask(&airtable.Task{Name: "Intro email", Status: "Todo", Client: "Ghost Co."})

	groups, err := f.api.Board(context.Background(), BoardOptions{})
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, "Live Client", groups[0].Stage)
	require.Len(t, groups[0].Clients, 1)
	assert.Equal(t, "Acme", groups[0].Clients[0].Client)
	// Completed tasks are hidden by the default preset.
	require.Len(t, groups[0].Clients[0].Tasks, 1)
	assert.Equal(t, "Renewal call", groups[0].Clients[0].Tasks[0].Name)

	// Unknown clients trail in the Unknown bucket.
	assert.Equal(t, domain.UnknownStage, groups[1].Stage)
	assert.Equal(t, "Ghost Co.", groups[1].Clients[0].Client)
}

func TestBoardShowClosed(t *testing.T) {
	f := newFixture(t)
	f.seedPipeline(t)

	groups, err := f.api.Board(context.Background(), BoardOptions{ShowClosed: true})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Clients[0].Tasks, 2)
}

func TestDeadlinesSortsAndResolvesOwners(t *testing.T) {
	f := newFixture(t)
	owner := f.store.SeedOwner(&airtable.Owner{Name: "Jordan"})
	f.store.SeedTask(&airtable.Task{Name: "Later", Status: "Todo", DueDate: "2024-06-20", OwnerIDs: []string{owner.ID}})
	f.store.SeedTask(&airtable.Task{Name: "Sooner", Status: "Todo", DueDate: "2024-06-10"})
	f.store.SeedTask(&airtable.Task{Name: "Undated", Status: "Todo"})

	deadlines, err := f.api.Deadlines(context.Background(), DeadlineOptions{})
	require.NoError(t, err)

	require.Len(t, deadlines, 3)
	assert.Equal(t, "Sooner", deadlines[0].Task.Name)
	assert.Equal(t, "Later", deadlines[1].Task.Name)
	assert.Equal(t, "Undated", deadlines[2].Task.Name)

	require.Len(t, deadlines[1].Owners, 1)
	assert.Equal(t, "Jordan", deadlines[1].Owners[0].Name)
}

func TestDeadlinesDateAndOwnerFilters(t *testing.T) {
	f := newFixture(t)
	owner := f.store.SeedOwner(&airtable.Owner{Name: "Jordan"})
	f.store.SeedTask(&airtable.Task{Name: "Mine today", Status: "Todo", DueDate: "2024-06-15", OwnerIDs: []string{owner.ID}})
	f.store.SeedTask(&airtable.Task{Name: "Theirs today", Status: "Todo", DueDate: "2024-06-15"})
	f.store.SeedTask(&airtable.Task{Name: "Mine overdue", Status: "Todo", DueDate: "2024-06-01", OwnerIDs: []string{owner.ID}})

	now := time.Date(2024, time.June, 15, 9, 0, 0, 0, time.Local)
	deadlines, err := f.api.Deadlines(context.Background(), DeadlineOptions{
		OwnerID: owner.ID,
		Due:     views.DateToday,
		Now:     now,
	})
	require.NoError(t, err)

	require.Len(t, deadlines, 1)
	assert.Equal(t, "Mine today", deadlines[0].Task.Name)
}

func TestCreateTaskOptimisticThenStored(t *testing.T) {
	f := newFixture(t)

	created, err := f.api.CreateTask(context.Background(), NewTaskInput{
		Name:    "  Prepare QBR deck  ",
		Status:  "Todo",
		DueDate: "2024-07-01",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Prepare QBR deck", created.Name)
	assert.Equal(t, domain.UnassignedClient, created.Client)
	require.NotNil(t, created.DueDate)

	tasks, err := f.api.(*apiImpl).cachedTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, created.ID, tasks[0].ID)
}

func TestCreateTaskValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.api.CreateTask(context.Background(), NewTaskInput{Name: "   "})
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))
}

func TestCreateTaskFailureRevertsCache(t *testing.T) {
	f := newFixture(t)
	f.store.SeedTask(&airtable.Task{Name: "Existing", Status: "Todo"})

	// Warm the cache, then make the create fail.
	_, err := f.api.Board(context.Background(), BoardOptions{})
	require.NoError(t, err)

	boom := errors.New("remote rejected")
	f.store.FailNext = boom
	_, err = f.api.CreateTask(context.Background(), NewTaskInput{Name: "Doomed"})
	require.ErrorIs(t, err, boom)

	tasks, err := f.api.(*apiImpl).cachedTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Existing", tasks[0].Name)
}

func TestUpdateTask(t *testing.T) {
	f := newFixture(t)
	seeded := f.store.SeedTask(&airtable.Task{Name: "Old name", Status: "Todo"})

	_, err := f.api.Board(context.Background(), BoardOptions{})
	require.NoError(t, err)

	task := domain.Task{ID: seeded.ID, Name: "New name", Status: "In Progress", Client: domain.UnassignedClient}
	require.NoError(t, f.api.UpdateTask(context.Background(), task))

	// Visible synchronously from the cache.
	tasks, err := f.api.(*apiImpl).cachedTasks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "New name", tasks[0].Name)

	// Persisted remotely.
	stored, err := f.store.GetTask(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "New name", stored.Name)
}

func TestUpdateClientFields(t *testing.T) {
	f := newFixture(t)
	f.seedPipeline(t)

	clients, err := f.api.Clients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 1)
	id := clients[0].ID

	pinned := true
	clientStatus := "On Hold"
	err = f.api.UpdateClientFields(context.Background(), id, domain.ClientPatch{
		Status: &clientStatus,
		Pinned: &pinned,
	})
	require.NoError(t, err)

	updated, err := f.api.Clients(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "On Hold", updated[0].Status)
	assert.True(t, updated[0].Pinned)
}

func TestUpdateClientFieldsRejectsEmptyPatch(t *testing.T) {
	f := newFixture(t)
	f.seedPipeline(t)

	clients, err := f.api.Clients(context.Background())
	require.NoError(t, err)

	err = f.api.UpdateClientFields(context.Background(), clients[0].ID, domain.ClientPatch{})
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))
}

func TestPerFieldClientOpsDelegate(t *testing.T) {
	f := newFixture(t)
	f.seedPipeline(t)

	clients, err := f.api.Clients(context.Background())
	require.NoError(t, err)
	id := clients[0].ID

	require.NoError(t, f.api.UpdateClientPinned(context.Background(), id, true))
	require.NoError(t, f.api.UpdateClientStatus(context.Background(), id, "Churned"))

	updated, err := f.api.Clients(context.Background())
	require.NoError(t, err)
	assert.True(t, updated[0].Pinned)
	assert.Equal(t, "Churned", updated[0].Status)
}

func TestStatusColorsLoadOnceAndLocalEdit(t *testing.T) {
	f := newFixture(t)
	f.store.SeedStatusColor("In Progress", "3182CE")

	colors, err := f.api.StatusColors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "#3182CE", colors["in progress"])

	require.NoError(t, f.api.SetStatusColor("In Progress", "FF0000"))
	colors, err = f.api.StatusColors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", colors["in progress"])

	// The remote table keeps its original value.
	remote, err := f.store.FetchStatusColors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "#3182CE", remote["In Progress"])
}

func TestSetStatusColorValidatesHex(t *testing.T) {
	f := newFixture(t)

	err := f.api.SetStatusColor("In Progress", "not-a-color")
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))
}

func TestRefreshRevalidatesAllKeys(t *testing.T) {
	f := newFixture(t)
	f.seedPipeline(t)

	_, err := f.api.Board(context.Background(), BoardOptions{})
	require.NoError(t, err)

	// A change lands remotely; the cache still holds the old value.
	f.store.SeedTask(&airtable.Task{Name: "Late arrival", Status: "Todo"})
	tasks, err := f.api.(*apiImpl).cachedTasks(context.Background())
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	require.NoError(t, f.api.Refresh(context.Background()))
	tasks, err = f.api.(*apiImpl).cachedTasks(context.Background())
	require.NoError(t, err)
	assert.Len(t, tasks, 3)
}
