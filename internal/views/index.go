// Package views builds the derived read models the presentation layer
// renders: client/stage resolution, board grouping, deadline filtering and
// sorting. Everything here is pure and synchronous; callers pass in the
// cached collections.
package views

import (
	"taskboard/internal/domain"
)

// ClientInfo is the resolved placement of one client in the pipeline.
type ClientInfo struct {
	Name      string
	StageID   string
	StageName string
}

// ClientIndex resolves client names to their lifecycle placement in O(1)
// after a single build pass.
type ClientIndex struct {
	byName  map[string]ClientInfo
	stages  map[string]domain.LifecycleStage
	clients []domain.Client
}

// NewClientIndex builds the lookup tables from the full client and stage
// collections.
func NewClientIndex(clients []domain.Client, stages []domain.LifecycleStage) *ClientIndex {
	idx := &ClientIndex{
		byName:  make(map[string]ClientInfo, len(clients)),
		stages:  make(map[string]domain.LifecycleStage, len(stages)),
		clients: clients,
	}
	for _, stage := range stages {
		idx.stages[stage.ID] = stage
	}
	for _, client := range clients {
		info := ClientInfo{Name: client.Name, StageID: client.LifecycleStageID, StageName: domain.UnknownStage}
		if stage, ok := idx.stages[client.LifecycleStageID]; ok {
			info.StageName = stage.Name
		}
		idx.byName[client.Name] = info
	}
	return idx
}

// Resolve maps a client name to its stage placement. A name not present in
// the client collection, or one whose stage reference is dangling, lands in
// the "Unknown" bucket; the name itself is always preserved.
func (idx *ClientIndex) Resolve(clientName string) ClientInfo {
	if info, ok := idx.byName[clientName]; ok {
		return info
	}
	return ClientInfo{Name: clientName, StageName: domain.UnknownStage}
}

// Clients returns the client collection the index was built from.
func (idx *ClientIndex) Clients() []domain.Client {
	return idx.clients
}
