package views

import (
	"sort"

	"taskboard/internal/domain"
)

// StageGroup is one column of the board: a stage and its clients' tasks,
// with client keys in case-sensitive lexicographic order.
type StageGroup struct {
	Stage   string
	Clients []ClientGroup
}

// ClientGroup is one client's tasks within a stage group.
type ClientGroup struct {
	Client string
	Tasks  []domain.Task
}

// GroupByStageAndClient buckets tasks by the lifecycle stage of their
// client, then by client name. Pinned clients appear in their stage even
// with zero matching tasks, so an emptied client does not vanish from the
// board.
func GroupByStageAndClient(tasks []domain.Task, idx *ClientIndex, pinned []domain.Client) map[string]map[string][]domain.Task {
	groups := make(map[string]map[string][]domain.Task)

	add := func(stage, client string) map[string][]domain.Task {
		byClient, ok := groups[stage]
		if !ok {
			byClient = make(map[string][]domain.Task)
			groups[stage] = byClient
		}
		if _, ok := byClient[client]; !ok {
			byClient[client] = []domain.Task{}
		}
		return byClient
	}

	for _, client := range pinned {
		info := idx.Resolve(client.Name)
		add(info.StageName, client.Name)
	}

	for _, task := range tasks {
		info := idx.Resolve(task.Client)
		byClient := add(info.StageName, info.Name)
		byClient[info.Name] = append(byClient[info.Name], task)
	}

	return groups
}

// OrderStages flattens grouped tasks into render order: stages sorted by
// their pipeline order, stages missing from the collection (including the
// "Unknown" bucket) trailing all known ones, client keys sorted within each
// stage.
func OrderStages(groups map[string]map[string][]domain.Task, stages []domain.LifecycleStage) []StageGroup {
	order := make(map[string]int, len(stages))
	for _, stage := range stages {
		order[stage.Name] = stage.Order
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		oi, iKnown := order[names[i]]
		oj, jKnown := order[names[j]]
		if iKnown != jKnown {
			return iKnown
		}
		if !iKnown {
			return names[i] < names[j]
		}
		return oi < oj
	})

	result := make([]StageGroup, 0, len(names))
	for _, name := range names {
		byClient := groups[name]
		clientNames := make([]string, 0, len(byClient))
		for client := range byClient {
			clientNames = append(clientNames, client)
		}
		sort.Strings(clientNames)

		group := StageGroup{Stage: name, Clients: make([]ClientGroup, 0, len(clientNames))}
		for _, client := range clientNames {
			group.Clients = append(group.Clients, ClientGroup{Client: client, Tasks: byClient[client]})
		}
		result = append(result, group)
	}
	return result
}
