package views

import (
	"sort"
	"strings"
	"time"

	"taskboard/internal/domain"
)

// DateFilter narrows tasks by due date, with calendar-day semantics in
// local time.
type DateFilter string

const (
	DateAll       DateFilter = "all"
	DateToday     DateFilter = "today"
	DateThisWeek  DateFilter = "week"
	DateThisMonth DateFilter = "month"
	DateOverdue   DateFilter = "overdue"
)

// Named excluded-status presets. Which terminal statuses a view hides is
// per-view configuration; these are the canned sets.
var ExcludedStatusPresets = map[string][]string{
	"completed": {"Completed"},
	"closed":    {"Completed", "Cancelled"},
	"inactive":  {"Completed", "Cancelled", "Blocked"},
}

// DefaultExcludedStatuses is the preset both the board and the deadlines
// view hide by default.
var DefaultExcludedStatuses = ExcludedStatusPresets["completed"]

// FilterOptions selects which tasks a view shows.
type FilterOptions struct {
	// ExcludedStatuses are hidden unless ShowClosed is set. Matched
	// case-insensitively.
	ExcludedStatuses []string
	// ShowClosed disables the excluded-status filter.
	ShowClosed bool
	// OwnerID, when set, keeps only tasks assigned to that owner.
	OwnerID string
	// DateFilter narrows by due date; tasks without one pass only DateAll.
	DateFilter DateFilter
	// Now anchors the calendar arithmetic. Zero means time.Now.
	Now time.Time
}

// FilterTasks applies the status, owner and date filters in order,
// returning a new slice that preserves the input order.
func FilterTasks(tasks []domain.Task, opts FilterOptions) []domain.Task {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	excluded := make(map[string]bool, len(opts.ExcludedStatuses))
	if !opts.ShowClosed {
		for _, status := range opts.ExcludedStatuses {
			excluded[strings.ToLower(status)] = true
		}
	}

	result := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if excluded[strings.ToLower(task.Status)] {
			continue
		}
		if opts.OwnerID != "" && !task.AssignedTo(opts.OwnerID) {
			continue
		}
		if !matchesDate(task, opts.DateFilter, now) {
			continue
		}
		result = append(result, task)
	}
	return result
}

func matchesDate(task domain.Task, filter DateFilter, now time.Time) bool {
	switch filter {
	case "", DateAll:
		return true
	}
	if !task.HasDueDate() {
		return false
	}
	due := *task.DueDate
	switch filter {
	case DateToday:
		return task.DueOn(now)
	case DateThisWeek:
		start := startOfDay(now)
		return !due.Before(start) && due.Before(start.AddDate(0, 0, 7))
	case DateThisMonth:
		return due.Year() == now.Year() && due.Month() == now.Month()
	case DateOverdue:
		return task.OverdueAt(now)
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SortByDueDate orders tasks by due date ascending. Tasks without a due
// date always sort last; the sort is stable so equal dates keep their
// input order.
func SortByDueDate(tasks []domain.Task) []domain.Task {
	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch {
		case !a.HasDueDate():
			return false
		case !b.HasDueDate():
			return true
		default:
			return a.DueDate.Before(*b.DueDate)
		}
	})
	return sorted
}
