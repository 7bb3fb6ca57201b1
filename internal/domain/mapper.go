package domain

import (
	"time"

	"taskboard/internal/airtable"
)

const dueDateLayout = "2006-01-02"

// TaskMapper handles conversion between domain and remote Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// FromRemote converts a remote Task to a domain Task.
func (m *TaskMapper) FromRemote(remote airtable.Task) Task {
	task := Task{
		ID:          remote.ID,
		Name:        remote.Name,
		Description: remote.Description,
		Status:      remote.Status,
		Client:      remote.Client,
		Priority:    remote.Priority,
		OwnerIDs:    remote.OwnerIDs,
	}
	if task.Client == "" {
		task.Client = UnassignedClient
	}
	if remote.DueDate != "" {
		if due, err := time.ParseInLocation(dueDateLayout, remote.DueDate, time.Local); err == nil {
			task.DueDate = &due
		}
	}
	return task
}

// ToRemote converts a domain Task to its remote shape.
func (m *TaskMapper) ToRemote(task Task) airtable.Task {
	remote := airtable.Task{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Status:      task.Status,
		Client:      task.Client,
		Priority:    task.Priority,
		OwnerIDs:    task.OwnerIDs,
	}
	if task.DueDate != nil {
		remote.DueDate = task.DueDate.Format(dueDateLayout)
	}
	return remote
}

// FromRemoteSlice converts a slice of remote Tasks to domain Tasks.
func (m *TaskMapper) FromRemoteSlice(remotes []*airtable.Task) []Task {
	tasks := make([]Task, len(remotes))
	for i, remote := range remotes {
		tasks[i] = m.FromRemote(*remote)
	}
	return tasks
}

// ClientMapper handles conversion between domain and remote Client models.
type ClientMapper struct{}

// NewClientMapper creates a new ClientMapper instance.
func NewClientMapper() *ClientMapper {
	return &ClientMapper{}
}

// FromRemote converts a remote Client to a domain Client. An unresolved
// stage reference maps to the UnknownStage label.
func (m *ClientMapper) FromRemote(remote airtable.Client) Client {
	client := Client{
		ID:                 remote.ID,
		Name:               remote.Name,
		Status:             remote.Status,
		LifecycleStageName: remote.StageName,
		StageOrder:         remote.StageOrder,
		Pinned:             remote.Pinned,
	}
	if len(remote.StageIDs) > 0 {
		client.LifecycleStageID = remote.StageIDs[0]
	}
	if len(remote.OwnerIDs) > 0 {
		client.OwnerID = remote.OwnerIDs[0]
	}
	if client.LifecycleStageName == "" {
		client.LifecycleStageName = UnknownStage
	}
	if remote.LastUpdated != "" {
		if updated, err := time.Parse(time.RFC3339, remote.LastUpdated); err == nil {
			client.LastUpdated = updated
		}
	}
	return client
}

// FromRemoteSlice converts a slice of remote Clients to domain Clients.
func (m *ClientMapper) FromRemoteSlice(remotes []*airtable.Client) []Client {
	clients := make([]Client, len(remotes))
	for i, remote := range remotes {
		clients[i] = m.FromRemote(*remote)
	}
	return clients
}

// PatchToRemote converts a domain ClientPatch to its remote shape.
func (m *ClientMapper) PatchToRemote(patch ClientPatch) airtable.ClientPatch {
	return airtable.ClientPatch{
		Status:  patch.Status,
		StageID: patch.LifecycleStageID,
		Pinned:  patch.Pinned,
		OwnerID: patch.OwnerID,
	}
}

// StageMapper handles conversion between domain and remote stage models.
type StageMapper struct{}

// NewStageMapper creates a new StageMapper instance.
func NewStageMapper() *StageMapper {
	return &StageMapper{}
}

// FromRemote converts a remote LifecycleStage to a domain LifecycleStage.
func (m *StageMapper) FromRemote(remote airtable.LifecycleStage) LifecycleStage {
	return LifecycleStage{
		ID:    remote.ID,
		Name:  remote.Name,
		Order: remote.Order,
	}
}

// FromRemoteSlice converts a slice of remote stages to domain stages.
func (m *StageMapper) FromRemoteSlice(remotes []*airtable.LifecycleStage) []LifecycleStage {
	stages := make([]LifecycleStage, len(remotes))
	for i, remote := range remotes {
		stages[i] = m.FromRemote(*remote)
	}
	return stages
}

// OwnerMapper handles conversion between domain and remote owner models.
type OwnerMapper struct{}

// NewOwnerMapper creates a new OwnerMapper instance.
func NewOwnerMapper() *OwnerMapper {
	return &OwnerMapper{}
}

// FromRemote converts a remote Owner to a domain Owner.
func (m *OwnerMapper) FromRemote(remote airtable.Owner) Owner {
	return Owner{
		ID:        remote.ID,
		Name:      remote.Name,
		AvatarURL: remote.AvatarURL,
	}
}

// FromRemoteSlice converts a slice of remote owners to domain owners.
func (m *OwnerMapper) FromRemoteSlice(remotes []*airtable.Owner) []Owner {
	owners := make([]Owner, len(remotes))
	for i, remote := range remotes {
		owners[i] = m.FromRemote(*remote)
	}
	return owners
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task   *TaskMapper
	Client *ClientMapper
	Stage  *StageMapper
	Owner  *OwnerMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task:   NewTaskMapper(),
		Client: NewClientMapper(),
		Stage:  NewStageMapper(),
		Owner:  NewOwnerMapper(),
	}
}
