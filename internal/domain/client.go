package domain

import (
	"time"
)

// UnknownStage is the label used when a client's lifecycle stage reference
// cannot be resolved, or when a task's client reference matches no client.
const UnknownStage = "Unknown"

// Client represents a client in the domain model.
type Client struct {
	ID                 string
	Name               string
	Status             string // free text, user editable
	LifecycleStageID   string // zero-or-one reference into the stage collection
	LifecycleStageName string // resolved label, UnknownStage when unresolved
	StageOrder         int
	Pinned             bool
	OwnerID            string    // zero-or-one reference to a team member
	LastUpdated        time.Time // server assigned, read only
}

// NewClient creates a new Client with the given name and stage reference.
func NewClient(name, stageID string) Client {
	return Client{
		Name:               name,
		LifecycleStageID:   stageID,
		LifecycleStageName: UnknownStage,
	}
}

// HasStage returns true if the client carries a lifecycle stage reference.
func (c Client) HasStage() bool {
	return c.LifecycleStageID != ""
}

// IsValid checks if the client has valid data.
func (c Client) IsValid() bool {
	return c.Name != ""
}

// String returns the client name for display purposes.
func (c Client) String() string {
	return c.Name
}

// ClientPatch holds a partial client update. Nil fields are left untouched
// by the write, narrowing the race window between independent field edits
// from different views.
type ClientPatch struct {
	Status           *string
	LifecycleStageID *string
	Pinned           *bool
	OwnerID          *string
}

// IsEmpty returns true if the patch would change nothing.
func (p ClientPatch) IsEmpty() bool {
	return p.Status == nil && p.LifecycleStageID == nil && p.Pinned == nil && p.OwnerID == nil
}
