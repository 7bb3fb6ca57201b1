package airtable

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"taskboard/internal/errors"
	"taskboard/internal/logging"
)

// Tables holds the table id of every resource kind. An empty id means the
// resource was never configured; operations against it are refused before
// any network call.
type Tables struct {
	Tasks        string
	Clients      string
	Stages       string
	Team         string
	StatusColors string
}

// ClientPatch is a partial client update in wire terms. Nil fields are not
// sent, so a patch only writes the fields it names.
type ClientPatch struct {
	Status  *string
	StageID *string
	Pinned  *bool
	OwnerID *string
}

// Store defines the interface for remote data operations. The production
// implementation talks to Airtable; tests and the testing factory use the
// in-memory implementation.
type Store interface {
	// Task operations
	ListTasks(ctx context.Context) ([]*Task, error)
	GetTask(ctx context.Context, id string) (*Task, error)
	CreateTask(ctx context.Context, task *Task) (*Task, error)
	UpdateTask(ctx context.Context, task *Task) (*Task, error)

	// Client operations
	ListClients(ctx context.Context) ([]*Client, error)
	CreateClient(ctx context.Context, name, stageID string) (*Client, error)
	PatchClientFields(ctx context.Context, id string, patch ClientPatch) (*Client, error)
	UpdateClientStatus(ctx context.Context, id, status string) (*Client, error)
	UpdateClientLifecycleStage(ctx context.Context, id, stageID string) (*Client, error)
	UpdateClientPinned(ctx context.Context, id string, pinned bool) (*Client, error)
	UpdateClientOwner(ctx context.Context, id, ownerID string) (*Client, error)

	// Lookup collections
	ListLifecycleStages(ctx context.Context) ([]*LifecycleStage, error)
	ListOwners(ctx context.Context) ([]*Owner, error)
	GetOwnersByIDs(ctx context.Context, ids []string) ([]*Owner, error)

	// Color configuration
	FetchStatusColors(ctx context.Context) (map[string]string, error)
}

// RemoteStore implements Store against the Airtable API.
type RemoteStore struct {
	client *RESTClient
	tables Tables
}

// NewRemoteStore creates a RemoteStore for the given client and table set.
func NewRemoteStore(client *RESTClient, tables Tables) *RemoteStore {
	return &RemoteStore{client: client, tables: tables}
}

func requireTable(resource, tableID string) error {
	if tableID == "" {
		return errors.NewConfigurationError(resource, "table id")
	}
	return nil
}

// ListTasks fetches all task records.
func (s *RemoteStore) ListTasks(ctx context.Context) ([]*Task, error) {
	if err := requireTable("tasks", s.tables.Tasks); err != nil {
		return nil, err
	}
	records, err := s.client.listAll(ctx, "list tasks", s.tables.Tasks)
	if err != nil {
		return nil, err
	}
	tasks := make([]*Task, len(records))
	for i, rec := range records {
		tasks[i] = taskFromRecord(rec)
	}
	logging.Debug("fetched tasks", "count", len(tasks))
	return tasks, nil
}

// GetTask fetches one task record by id.
func (s *RemoteStore) GetTask(ctx context.Context, id string) (*Task, error) {
	if err := requireTable("tasks", s.tables.Tasks); err != nil {
		return nil, err
	}
	rec, err := s.client.getRecord(ctx, "get task", "task", s.tables.Tasks, id)
	if err != nil {
		return nil, err
	}
	return taskFromRecord(*rec), nil
}

// CreateTask creates a task record and returns the server's copy.
func (s *RemoteStore) CreateTask(ctx context.Context, task *Task) (*Task, error) {
	if err := requireTable("tasks", s.tables.Tasks); err != nil {
		return nil, err
	}
	rec, err := s.client.createRecord(ctx, "create task", s.tables.Tasks, task.fields())
	if err != nil {
		return nil, err
	}
	return taskFromRecord(*rec), nil
}

// UpdateTask overwrites every task field and returns the server's copy.
func (s *RemoteStore) UpdateTask(ctx context.Context, task *Task) (*Task, error) {
	if err := requireTable("tasks", s.tables.Tasks); err != nil {
		return nil, err
	}
	rec, err := s.client.updateRecord(ctx, "update task", "task", s.tables.Tasks, task.ID, task.fields())
	if err != nil {
		return nil, err
	}
	return taskFromRecord(*rec), nil
}

// ListClients fetches lifecycle stages first, builds the id lookup, then
// fetches clients and attaches the resolved stage name and order. The two
// calls are sequential with no transactional guarantee between them; a
// stage renamed in between yields a stale label, which is accepted.
func (s *RemoteStore) ListClients(ctx context.Context) ([]*Client, error) {
	if err := requireTable("clients", s.tables.Clients); err != nil {
		return nil, err
	}

	stages, err := s.ListLifecycleStages(ctx)
	if err != nil {
		return nil, err
	}
	stagesByID := make(map[string]*LifecycleStage, len(stages))
	for _, stage := range stages {
		stagesByID[stage.ID] = stage
	}

	records, err := s.client.listAll(ctx, "list clients", s.tables.Clients)
	if err != nil {
		return nil, err
	}

	clients := make([]*Client, len(records))
	for i, rec := range records {
		client := clientFromRecord(rec)
		if len(client.StageIDs) > 0 {
			if stage, ok := stagesByID[client.StageIDs[0]]; ok {
				client.StageName = stage.Name
				client.StageOrder = stage.Order
			}
		}
		clients[i] = client
	}
	logging.Debug("fetched clients", "count", len(clients))
	return clients, nil
}

// CreateClient creates a client record with the given name and stage.
func (s *RemoteStore) CreateClient(ctx context.Context, name, stageID string) (*Client, error) {
	if err := requireTable("clients", s.tables.Clients); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{
		clientFieldName: name,
	}
	if stageID != "" {
		fields[clientFieldStage] = []string{stageID}
	}
	rec, err := s.client.createRecord(ctx, "create client", s.tables.Clients, fields)
	if err != nil {
		return nil, err
	}
	return clientFromRecord(*rec), nil
}

// PatchClientFields writes only the fields the patch names, in one call.
// The per-field update operations below delegate here, preserving the
// remote store's write granularity while narrowing the race window between
// independent field edits.
func (s *RemoteStore) PatchClientFields(ctx context.Context, id string, patch ClientPatch) (*Client, error) {
	if err := requireTable("clients", s.tables.Clients); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if patch.Status != nil {
		fields[clientFieldStatus] = titleCase(*patch.Status)
	}
	if patch.StageID != nil {
		if *patch.StageID == "" {
			fields[clientFieldStage] = []string{}
		} else {
			fields[clientFieldStage] = []string{*patch.StageID}
		}
	}
	if patch.Pinned != nil {
		fields[clientFieldPinned] = *patch.Pinned
	}
	if patch.OwnerID != nil {
		if *patch.OwnerID == "" {
			fields[clientFieldOwner] = []string{}
		} else {
			fields[clientFieldOwner] = []string{*patch.OwnerID}
		}
	}
	if len(fields) == 0 {
		return nil, errors.NewValidationError("client patch is empty", nil)
	}

	rec, err := s.client.updateRecord(ctx, "patch client", "client", s.tables.Clients, id, fields)
	if err != nil {
		return nil, err
	}
	return clientFromRecord(*rec), nil
}

// UpdateClientStatus writes the client's free-text status.
func (s *RemoteStore) UpdateClientStatus(ctx context.Context, id, status string) (*Client, error) {
	return s.PatchClientFields(ctx, id, ClientPatch{Status: &status})
}

// UpdateClientLifecycleStage writes the client's stage reference.
func (s *RemoteStore) UpdateClientLifecycleStage(ctx context.Context, id, stageID string) (*Client, error) {
	return s.PatchClientFields(ctx, id, ClientPatch{StageID: &stageID})
}

// UpdateClientPinned writes the client's pinned flag.
func (s *RemoteStore) UpdateClientPinned(ctx context.Context, id string, pinned bool) (*Client, error) {
	return s.PatchClientFields(ctx, id, ClientPatch{Pinned: &pinned})
}

// UpdateClientOwner writes the client's assigned owner.
func (s *RemoteStore) UpdateClientOwner(ctx context.Context, id, ownerID string) (*Client, error) {
	return s.PatchClientFields(ctx, id, ClientPatch{OwnerID: &ownerID})
}

// ListLifecycleStages fetches all stage records.
func (s *RemoteStore) ListLifecycleStages(ctx context.Context) ([]*LifecycleStage, error) {
	if err := requireTable("lifecycle stages", s.tables.Stages); err != nil {
		return nil, err
	}
	records, err := s.client.listAll(ctx, "list lifecycle stages", s.tables.Stages)
	if err != nil {
		return nil, err
	}
	stages := make([]*LifecycleStage, len(records))
	for i, rec := range records {
		stages[i] = stageFromRecord(rec)
	}
	return stages, nil
}

// ListOwners fetches all team member records.
func (s *RemoteStore) ListOwners(ctx context.Context) ([]*Owner, error) {
	if err := requireTable("team members", s.tables.Team); err != nil {
		return nil, err
	}
	records, err := s.client.listAll(ctx, "list owners", s.tables.Team)
	if err != nil {
		return nil, err
	}
	owners := make([]*Owner, len(records))
	for i, rec := range records {
		owners[i] = ownerFromRecord(rec)
	}
	return owners, nil
}

// GetOwnersByIDs deduplicates the given ids and fetches them in parallel.
// An individual failed lookup is logged and omitted from the result rather
// than failing the whole batch.
func (s *RemoteStore) GetOwnersByIDs(ctx context.Context, ids []string) ([]*Owner, error) {
	if err := requireTable("team members", s.tables.Team); err != nil {
		return nil, err
	}

	unique := dedupe(ids)
	results := make([]*Owner, len(unique))

	var wg sync.WaitGroup
	for i, id := range unique {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			rec, err := s.client.getRecord(ctx, "get owner", "owner", s.tables.Team, id)
			if err != nil {
				batchErr := errors.NewPartialBatchError("owner", id, err)
				logging.Warn("owner lookup failed", "id", id, "error", batchErr)
				return
			}
			results[i] = ownerFromRecord(*rec)
		}(i, id)
	}
	wg.Wait()

	owners := make([]*Owner, 0, len(unique))
	for _, owner := range results {
		if owner != nil {
			owners = append(owners, owner)
		}
	}
	return owners, nil
}

// FetchStatusColors reads the entire color-configuration table, page by
// page, and aggregates it into one status-to-color mapping. Hex values
// missing the leading "#" are normalized.
func (s *RemoteStore) FetchStatusColors(ctx context.Context) (map[string]string, error) {
	if err := requireTable("status colors", s.tables.StatusColors); err != nil {
		return nil, err
	}
	records, err := s.client.listAll(ctx, "fetch status colors", s.tables.StatusColors)
	if err != nil {
		return nil, err
	}

	colors := make(map[string]string, len(records))
	for _, rec := range records {
		status := rec.stringField(colorFieldStatus)
		hex := rec.stringField(colorFieldHex)
		if status == "" || hex == "" {
			continue
		}
		colors[status] = NormalizeHex(hex)
	}
	return colors, nil
}

// NormalizeHex adds the leading "#" a color-configuration entry may lack.
func NormalizeHex(hex string) string {
	if hex == "" || strings.HasPrefix(hex, "#") {
		return hex
	}
	return "#" + hex
}

// titleCase uppercases the first letter of each word, matching how client
// statuses are stored upstream.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	return unique
}
