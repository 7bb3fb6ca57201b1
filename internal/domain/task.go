package domain

import (
	"time"
)

// UnassignedClient is the bucket used for tasks whose client reference is
// empty. The client field on a task is a denormalized name, not a foreign
// key, so an unmatched name is expected and never an error.
const UnassignedClient = "Unassigned"

// Task represents a task in the domain model.
// This is a pure domain model without remote-store concerns.
type Task struct {
	ID          string
	Name        string
	Description string
	Status      string
	DueDate     *time.Time // calendar date, nil when the task has no deadline
	Client      string     // denormalized client name
	OwnerIDs    []string   // team member record ids
	Priority    string
}

// NewTask creates a new Task with the given name and client.
func NewTask(name, client string) Task {
	if client == "" {
		client = UnassignedClient
	}
	return Task{
		Name:   name,
		Client: client,
	}
}

// HasDueDate returns true if the task has a due date set.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil
}

// DueOn returns true if the task is due on the calendar day of ref,
// evaluated in ref's location.
func (t Task) DueOn(ref time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	y1, m1, d1 := t.DueDate.Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// OverdueAt returns true if the task's due date falls on a calendar day
// strictly before ref's day.
func (t Task) OverdueAt(ref time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	startOfDay := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	return t.DueDate.Before(startOfDay)
}

// AssignedTo returns true if the task's owner list contains the given id.
func (t Task) AssignedTo(ownerID string) bool {
	for _, id := range t.OwnerIDs {
		if id == ownerID {
			return true
		}
	}
	return false
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return t.Name != ""
}

// String returns the task name for display purposes.
func (t Task) String() string {
	return t.Name
}
