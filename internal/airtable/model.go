package airtable

// Wire models for the five record kinds. These mirror the remote table
// shapes; the domain mapper converts them into domain entities.

// Field names as they appear in the remote tables.
const (
	taskFieldName        = "Name"
	taskFieldDescription = "Description"
	taskFieldStatus      = "Status"
	taskFieldDueDate     = "DueDate"
	taskFieldClient      = "Client"
	taskFieldPriority    = "Priority"
	taskFieldOwner       = "AssignedOwner"

	clientFieldName        = "Client"
	clientFieldStatus      = "Status"
	clientFieldStage       = "Lifecycle Stage"
	clientFieldPinned      = "Pinned"
	clientFieldOwner       = "Owner"
	clientFieldLastUpdated = "Last Updated"

	stageFieldName  = "Name"
	stageFieldOrder = "Order"

	teamFieldName   = "Name"
	teamFieldAvatar = "Avatar"

	colorFieldStatus = "Status"
	colorFieldHex    = "HexColor"
)

// Task is the wire model of one task record.
type Task struct {
	ID          string
	Name        string
	Description string
	Status      string
	DueDate     string // YYYY-MM-DD, empty when unset
	Client      string // denormalized client name, "Unassigned" when empty
	Priority    string
	OwnerIDs    []string
}

// Client is the wire model of one client record, with the lifecycle stage
// label already attached from the stage lookup.
type Client struct {
	ID          string
	Name        string
	Status      string
	StageIDs    []string // linked field, zero-or-one in practice
	StageName   string   // resolved label, "" when unresolved
	StageOrder  int
	Pinned      bool
	OwnerIDs    []string
	LastUpdated string // RFC 3339, server assigned
}

// LifecycleStage is the wire model of one stage record.
type LifecycleStage struct {
	ID    string
	Name  string
	Order int
}

// Owner is the wire model of one team member record.
type Owner struct {
	ID        string
	Name      string
	AvatarURL string
}

func taskFromRecord(rec record) *Task {
	client := rec.stringField(taskFieldClient)
	if client == "" {
		client = "Unassigned"
	}
	return &Task{
		ID:          rec.ID,
		Name:        rec.stringField(taskFieldName),
		Description: rec.stringField(taskFieldDescription),
		Status:      rec.stringField(taskFieldStatus),
		DueDate:     rec.stringField(taskFieldDueDate),
		Client:      client,
		Priority:    rec.stringField(taskFieldPriority),
		OwnerIDs:    rec.stringSliceField(taskFieldOwner),
	}
}

func (t *Task) fields() map[string]interface{} {
	return map[string]interface{}{
		taskFieldName:        t.Name,
		taskFieldDescription: t.Description,
		taskFieldStatus:      t.Status,
		taskFieldDueDate:     t.DueDate,
		taskFieldClient:      t.Client,
		taskFieldPriority:    t.Priority,
		taskFieldOwner:       t.OwnerIDs,
	}
}

func clientFromRecord(rec record) *Client {
	return &Client{
		ID:          rec.ID,
		Name:        rec.stringField(clientFieldName),
		Status:      rec.stringField(clientFieldStatus),
		StageIDs:    rec.stringSliceField(clientFieldStage),
		Pinned:      rec.boolField(clientFieldPinned),
		OwnerIDs:    rec.stringSliceField(clientFieldOwner),
		LastUpdated: rec.stringField(clientFieldLastUpdated),
	}
}

func stageFromRecord(rec record) *LifecycleStage {
	return &LifecycleStage{
		ID:    rec.ID,
		Name:  rec.stringField(stageFieldName),
		Order: rec.intField(stageFieldOrder),
	}
}

func ownerFromRecord(rec record) *Owner {
	return &Owner{
		ID:        rec.ID,
		Name:      rec.stringField(teamFieldName),
		AvatarURL: rec.attachmentURLField(teamFieldAvatar),
	}
}
