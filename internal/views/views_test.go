package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	return &d
}

func testStages() []domain.LifecycleStage {
	return []domain.LifecycleStage{
		{ID: "stg1", Name: "Onboarding", Order: 1},
		{ID: "stg2", Name: "Live Client", Order: 2},
		{ID: "stg3", Name: "Renewal", Order: 3},
	}
}

func testClients() []domain.Client {
	return []domain.Client{
		{ID: "cli1", Name: "Acme", LifecycleStageID: "stg2", LifecycleStageName: "Live Client"},
		{ID: "cli2", Name: "Globex", LifecycleStageID: "stg1", LifecycleStageName: "Onboarding"},
		{ID: "cli3", Name: "Initech", LifecycleStageID: "stg-deleted"},
	}
}

func TestResolveKnownClient(t *testing.T) {
	idx := NewClientIndex(testClients(), testStages())

	info := idx.Resolve("Acme")
	assert.Equal(t, "Acme", info.Name)
	assert.Equal(t, "stg2", info.StageID)
	assert.Equal(t, "Live Client", info.StageName)
}

func TestResolveUnknownClientAndDanglingStage(t *testing.T) {
	idx := NewClientIndex(testClients(), testStages())

	ghost := idx.Resolve("Ghost Co.")
	assert.Equal(t, "Ghost Co.", ghost.Name)
	assert.Equal(t, domain.UnknownStage, ghost.StageName)

	// Known client whose stage record no longer exists.
	dangling := idx.Resolve("Initech")
	assert.Equal(t, "Initech", dangling.Name)
	assert.Equal(t, domain.UnknownStage, dangling.StageName)
}

func TestGroupByStageAndClient(t *testing.T) {
	idx := NewClientIndex(testClients(), testStages())
	tasks := []domain.Task{
		{ID: "t1", Name: "Kickoff deck", Client: "Globex"},
		{ID: "t2", Name: "Renewal call", Client: "Acme"},
		{ID: "t3", Name: "QBR prep", Client: "Acme"},
		{ID: "t4", Name: "Archive docs", Client: "Ghost Co."},
	}

	groups := GroupByStageAndClient(tasks, idx, nil)

	require.Contains(t, groups, "Live Client")
	assert.Len(t, groups["Live Client"]["Acme"], 2)
	assert.Len(t, groups["Onboarding"]["Globex"], 1)
	assert.Len(t, groups[domain.UnknownStage]["Ghost Co."], 1)
}

func TestGroupingIsIdempotent(t *testing.T) {
	idx := NewClientIndex(testClients(), testStages())
	tasks := []domain.Task{
		{ID: "t1", Name: "Kickoff deck", Client: "Globex"},
		{ID: "t2", Name: "Renewal call", Client: "Acme"},
	}

	first := GroupByStageAndClient(tasks, idx, nil)
	second := GroupByStageAndClient(tasks, idx, nil)
	assert.Equal(t, first, second)
}

func TestPinnedClientAppearsWithZeroTasks(t *testing.T) {
	idx := NewClientIndex(testClients(), testStages())
	pinned := []domain.Client{{ID: "cli1", Name: "Acme", Pinned: true}}

	groups := GroupByStageAndClient(nil, idx, pinned)

	require.Contains(t, groups, "Live Client")
	assert.Contains(t, groups["Live Client"], "Acme")
	assert.Empty(t, groups["Live Client"]["Acme"])
}

func TestOrderStages(t *testing.T) {
	idx := NewClientIndex(testClients(), testStages())
	tasks := []domain.Task{
		{ID: "t1", Name: "Archive docs", Client: "Ghost Co."},
		{ID: "t2", Name: "Renewal call", Client: "Acme"},
		{ID: "t3", Name: "Kickoff deck", Client: "Globex"},
		{ID: "t4", Name: "Beta invite", Client: "Banzai"},
	}

	groups := GroupByStageAndClient(tasks, idx, nil)
	ordered := OrderStages(groups, testStages())

	require.Len(t, ordered, 3)
	assert.Equal(t, "Onboarding", ordered[0].Stage)
	assert.Equal(t, "Live Client", ordered[1].Stage)
	assert.Equal(t, domain.UnknownStage, ordered[2].Stage)

	// Client keys sorted case-sensitively within a stage.
	unknown := ordered[2]
	require.Len(t, unknown.Clients, 2)
	assert.Equal(t, "Banzai", unknown.Clients[0].Client)
	assert.Equal(t, "Ghost Co.", unknown.Clients[1].Client)
}

func TestOrderStagesDoesNotPanicWithoutStageCollection(t *testing.T) {
	idx := NewClientIndex(testClients(), testStages())
	tasks := []domain.Task{{ID: "t1", Name: "Renewal call", Client: "Acme"}}

	groups := GroupByStageAndClient(tasks, idx, nil)
	ordered := OrderStages(groups, nil)

	require.Len(t, ordered, 1)
	assert.Equal(t, "Live Client", ordered[0].Stage)
}

func TestFilterTasksExcludesCompletedByDefault(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t1", Name: "Open item", Status: "In Progress"},
		{ID: "t2", Name: "Done item", Status: "Completed"},
		{ID: "t3", Name: "Also done", Status: "completed"},
	}

	visible := FilterTasks(tasks, FilterOptions{ExcludedStatuses: DefaultExcludedStatuses})
	require.Len(t, visible, 1)
	assert.Equal(t, "t1", visible[0].ID)

	all := FilterTasks(tasks, FilterOptions{ExcludedStatuses: DefaultExcludedStatuses, ShowClosed: true})
	assert.Len(t, all, 3)
}

func TestFilterTasksPresets(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t1", Status: "In Progress"},
		{ID: "t2", Status: "Completed"},
		{ID: "t3", Status: "Cancelled"},
		{ID: "t4", Status: "Blocked"},
	}

	tests := []struct {
		preset string
		want   []string
	}{
		{preset: "completed", want: []string{"t1", "t3", "t4"}},
		{preset: "closed", want: []string{"t1", "t4"}},
		{preset: "inactive", want: []string{"t1"}},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			got := FilterTasks(tasks, FilterOptions{ExcludedStatuses: ExcludedStatusPresets[tt.preset]})
			ids := make([]string, 0, len(got))
			for _, task := range got {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterTasksByOwner(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t1", OwnerIDs: []string{"own1", "own2"}},
		{ID: "t2", OwnerIDs: []string{"own2"}},
		{ID: "t3"},
	}

	got := FilterTasks(tasks, FilterOptions{OwnerID: "own1"})
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)
}

func TestFilterTasksByDate(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 30, 0, 0, time.Local)
	tasks := []domain.Task{
		{ID: "today", DueDate: datePtr(2024, time.June, 15)},
		{ID: "yesterday", DueDate: datePtr(2024, time.June, 14)},
		{ID: "in-five-days", DueDate: datePtr(2024, time.June, 20)},
		{ID: "in-ten-days", DueDate: datePtr(2024, time.June, 25)},
		{ID: "next-month", DueDate: datePtr(2024, time.July, 2)},
		{ID: "undated"},
	}

	tests := []struct {
		name   string
		filter DateFilter
		want   []string
	}{
		{name: "all keeps undated", filter: DateAll, want: []string{"today", "yesterday", "in-five-days", "in-ten-days", "next-month", "undated"}},
		{name: "today", filter: DateToday, want: []string{"today"}},
		{name: "week", filter: DateThisWeek, want: []string{"today", "in-five-days"}},
		{name: "month", filter: DateThisMonth, want: []string{"today", "yesterday", "in-five-days", "in-ten-days"}},
		{name: "overdue excludes today", filter: DateOverdue, want: []string{"yesterday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTasks(tasks, FilterOptions{DateFilter: tt.filter, Now: now})
			ids := make([]string, 0, len(got))
			for _, task := range got {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSortByDueDate(t *testing.T) {
	tasks := []domain.Task{
		{ID: "undated-1"},
		{ID: "late", DueDate: datePtr(2024, time.July, 1)},
		{ID: "early", DueDate: datePtr(2024, time.June, 1)},
		{ID: "undated-2"},
		{ID: "same-day", DueDate: datePtr(2024, time.June, 1)},
	}

	sorted := SortByDueDate(tasks)

	ids := make([]string, 0, len(sorted))
	for _, task := range sorted {
		ids = append(ids, task.ID)
	}
	// Equal dates keep input order; undated trail everything.
	assert.Equal(t, []string{"early", "same-day", "late", "undated-1", "undated-2"}, ids)

	// Input untouched.
	assert.Equal(t, "undated-1", tasks[0].ID)
}
