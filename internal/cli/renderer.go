package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/api"
	"taskboard/internal/domain"
	"taskboard/internal/status"
	"taskboard/internal/views"
)

var (
	stageStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	clientStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	pinStyle    = lipgloss.NewStyle().Bold(true)
)

// Renderer turns view models into terminal output, coloring status badges
// from the registry.
type Renderer struct {
	out        io.Writer
	registry   *status.Registry
	dateFormat string
}

// NewRenderer creates a renderer writing to out
func NewRenderer(out io.Writer, registry *status.Registry, dateFormat string) *Renderer {
	return &Renderer{out: out, registry: registry, dateFormat: dateFormat}
}

func (r *Renderer) badge(taskStatus string) string {
	if taskStatus == "" {
		return ""
	}
	return r.registry.Style(taskStatus).Render("[" + taskStatus + "]")
}

func (r *Renderer) dueDate(task domain.Task) string {
	if !task.HasDueDate() {
		return ""
	}
	return task.DueDate.Format(r.dateFormat)
}

// Board renders the grouped accordion-style board view
func (r *Renderer) Board(groups []views.StageGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(r.out, "No tasks to show")
		return
	}

	for i, group := range groups {
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		fmt.Fprintln(r.out, stageStyle.Render(group.Stage))
		for _, client := range group.Clients {
			fmt.Fprintf(r.out, "  %s\n", clientStyle.Render(client.Client))
			if len(client.Tasks) == 0 {
				fmt.Fprintf(r.out, "    %s\n", mutedStyle.Render("(no open tasks)"))
				continue
			}
			for _, task := range client.Tasks {
				line := "    - " + task.Name
				if badge := r.badge(task.Status); badge != "" {
					line += " " + badge
				}
				if due := r.dueDate(task); due != "" {
					line += " " + mutedStyle.Render("due "+due)
				}
				fmt.Fprintln(r.out, line)
			}
		}
	}
}

// Deadlines renders the due-date-sorted deadline list
func (r *Renderer) Deadlines(deadlines []api.DeadlineTask) {
	if len(deadlines) == 0 {
		fmt.Fprintln(r.out, "No deadlines to show")
		return
	}

	for _, entry := range deadlines {
		due := r.dueDate(entry.Task)
		if due == "" {
			due = mutedStyle.Render("no due date")
		}
		line := fmt.Sprintf("%-12s  %s", due, entry.Task.Name)
		if badge := r.badge(entry.Task.Status); badge != "" {
			line += " " + badge
		}
		if len(entry.Owners) > 0 {
			names := make([]string, 0, len(entry.Owners))
			for _, owner := range entry.Owners {
				names = append(names, owner.Name)
			}
			line += " " + mutedStyle.Render("("+strings.Join(names, ", ")+")")
		}
		fmt.Fprintln(r.out, line)
	}
}

// Clients renders the client listing used by the settings view
func (r *Renderer) Clients(clients []domain.Client) {
	if len(clients) == 0 {
		fmt.Fprintln(r.out, "No clients to show")
		return
	}

	for _, client := range clients {
		name := client.Name
		if client.Pinned {
			name = pinStyle.Render("* ") + name
		} else {
			name = "  " + name
		}
		line := fmt.Sprintf("%-30s  %-20s", name, client.LifecycleStageName)
		if client.Status != "" {
			line += " " + r.registry.Style(client.Status).Render(client.Status)
		}
		fmt.Fprintf(r.out, "%s  %s\n", line, mutedStyle.Render(client.ID))
	}
}

// Task renders one task in detail
func (r *Renderer) Task(task domain.Task) {
	fmt.Fprintln(r.out, clientStyle.Render(task.Name))
	if task.Description != "" {
		fmt.Fprintf(r.out, "  %s\n", task.Description)
	}
	if badge := r.badge(task.Status); badge != "" {
		fmt.Fprintf(r.out, "  status: %s\n", badge)
	}
	fmt.Fprintf(r.out, "  client: %s\n", task.Client)
	if due := r.dueDate(task); due != "" {
		fmt.Fprintf(r.out, "  due:    %s\n", due)
	}
	if task.Priority != "" {
		fmt.Fprintf(r.out, "  priority: %s\n", task.Priority)
	}
	fmt.Fprintf(r.out, "  id:     %s\n", mutedStyle.Render(task.ID))
}

// Colors renders the status color configuration
func (r *Renderer) Colors(colors map[string]string, order []string) {
	if len(colors) == 0 {
		fmt.Fprintln(r.out, "No status colors configured")
		return
	}

	for _, name := range order {
		hex := colors[name]
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■")
		fmt.Fprintf(r.out, "%s %-25s %s\n", swatch, name, hex)
	}
}
