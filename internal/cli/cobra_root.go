package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"taskboard/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd *cobra.Command
	app *App
}

// NewRootCommand creates the root cobra command with all subcommands
func NewRootCommand(app *App, cfg *config.Config) *RootCommand {
	root := &RootCommand{app: app}

	root.cmd = &cobra.Command{
		Use:   "tb",
		Short: "A command-line task board for client work",
		Long: `Task Board (tb) renders a shared task and client pipeline from a remote
Airtable base: a board grouped by client lifecycle stage, a deadline view
sorted by due date, and client management commands.

Reads are served from a shared in-memory cache with request deduplication;
edits apply to the cache immediately and are persisted remotely, reverting
automatically if the write fails.

EXAMPLES:
  tb board                                 # Grouped board, completed tasks hidden
  tb board --show-closed                   # Include completed tasks
  tb deadlines --due week                  # Tasks due in the next seven days
  tb deadlines --owner "Jordan"            # One owner's deadlines
  tb task add "Prepare QBR deck" --client Acme --due 2024-07-01
  tb clients set-stage recXXXXXXXXXXXXXX "Live Client"
  tb colors set "In Progress" "#3182CE"    # Session-only color override
  tb refresh                               # Drop caches and refetch

CONFIGURATION:
  Configuration cascades: environment variables > ~/.taskboard/config.toml > defaults

  Airtable:
    TB_AIRTABLE_TOKEN                      Personal access token (required)
    TB_AIRTABLE_BASE_ID                    Base id (required)
    TB_AIRTABLE_TASKS_TABLE_ID             Tasks table id
    TB_AIRTABLE_CLIENTS_TABLE_ID           Clients table id
    TB_AIRTABLE_STAGES_TABLE_ID            Lifecycle stages table id
    TB_AIRTABLE_TEAM_TABLE_ID              Team table id
    TB_AIRTABLE_COLORS_TABLE_ID            Status colors table id

  Cache:
    TB_CACHE_DEDUPE_INTERVAL               Freshness window (default: 5s)
    TB_CACHE_REFRESH_INTERVAL              Background refresh period (default: 30s)

  Display:
    TB_DISPLAY_STATUS_PRESET               Hidden statuses: completed, closed, inactive
    TB_DISPLAY_SHOW_CLOSED                 Show hidden statuses (default: false)

  Application:
    TB_APP_TIMEOUT                         Per-command timeout (default: 60s)
    TB_APP_VERBOSE                         Enable debug logging (default: false)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.addSubcommands(cfg)
	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// Command exposes the underlying cobra command, used by tests
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

func (r *RootCommand) timeout() time.Duration {
	if r.app.config != nil {
		return r.app.config.Application.Timeout
	}
	return 60 * time.Second
}

func (r *RootCommand) addSubcommands(cfg *config.Config) {
	preset := "completed"
	showClosed := false
	if cfg != nil {
		preset = cfg.Display.StatusPreset
		showClosed = cfg.Display.ShowClosed
	}

	// Board command
	boardCmd := &cobra.Command{
		Use:   "board",
		Short: "Show tasks grouped by client lifecycle stage",
		Long: `Show every open task grouped by the lifecycle stage of its client, then
by client. Pinned clients stay visible even with no open tasks; tasks for
unknown clients land in the trailing "Unknown" group.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout())
			defer cancel()

			flags := BoardFlags{}
			flags.ShowClosed, _ = cmd.Flags().GetBool("show-closed")
			flags.StatusPreset, _ = cmd.Flags().GetString("statuses")
			flags.OwnerID, _ = cmd.Flags().GetString("owner")
			return NewBoardCommand(r.app).Execute(ctx, flags)
		},
	}
	boardCmd.Flags().Bool("show-closed", showClosed, "Include tasks hidden by the status preset")
	boardCmd.Flags().String("statuses", preset, "Excluded-status preset: completed, closed, inactive")
	boardCmd.Flags().String("owner", "", "Show only tasks assigned to this team member id")

	// Deadlines command
	deadlinesCmd := &cobra.Command{
		Use:   "deadlines",
		Short: "Show tasks sorted by due date",
		Long: `Show tasks sorted by due date, earliest first, with assigned team members
resolved. Tasks without a due date sort last and are excluded by every
--due filter.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout())
			defer cancel()

			flags := DeadlineFlags{}
			flags.Owner, _ = cmd.Flags().GetString("owner")
			flags.Due, _ = cmd.Flags().GetString("due")
			flags.ShowClosed, _ = cmd.Flags().GetBool("show-closed")
			flags.StatusPreset, _ = cmd.Flags().GetString("statuses")
			return NewDeadlinesCommand(r.app).Execute(ctx, flags)
		},
	}
	deadlinesCmd.Flags().String("owner", "", "Team member id or name to focus on")
	deadlinesCmd.Flags().String("due", "", "Due filter: today, week, month or overdue")
	deadlinesCmd.Flags().Bool("show-closed", showClosed, "Include tasks hidden by the status preset")
	deadlinesCmd.Flags().String("statuses", preset, "Excluded-status preset: completed, closed, inactive")

	// Clients command group
	clientsCmd := &cobra.Command{
		Use:   "clients",
		Short: "List and manage clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout())
			defer cancel()
			return NewClientsCommand(r.app).List(ctx)
		},
	}

	clientsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List clients with stage and status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout())
			defer cancel()
			return NewClientsCommand(r.app).List(ctx)
		},
	}

	clientsAddCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a new client",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout())
			defer cancel()
			stage, _ := cmd.Flags().GetString("stage")
			return NewClientsCommand(r.app).Add(ctx, strings.Join(args, " "), stage)
		},
	}
	clientsAddCmd.Flags().String("stage", "", "Lifecycle stage id or name")

	clientsSetStageCmd := &cobra.Command{
		Use:   "set-stage [client id] [stage]",
		Short: "Move a client to another lifecycle stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout())
			defer cancel()
			return NewClientsCommand(r.app).SetStage(ctx, args[0], args[1])
		},
	}

	clientsSetStatusCmd := &cobra.Command{
		Use:   "set-status [client id] [status]",
		Short: "Change a client's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout())
			defer cancel()
			return NewClientsCommand(r.app).SetStatus(ctx, args[0], args[1])
		},
	}

	clientsPinCmd := &cobra.Command{
		Use:   "pin [client id] [true|false]",
		Short: "Keep a client visible on the board with zero open tasks",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout())
			defer cancel()
			value := ""
			if len(args) > 1 {
				value = args[1]
			}
			return NewClientsCommand(r.app).Pin(ctx, args[0], value)
		},
	}

	clientsSetOwnerCmd := &cobra.Command{
		Use:   "set-owner [client id] [owner id]",
		Short: "Assign a client to a team member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout())
			defer cancel()
			return NewClientsCommand(r.app).SetOwner(ctx, args[0], args[1])
		},
	}

	clientsCmd.AddCommand(clientsListCmd, clientsAddCmd, clientsSetStageCmd, clientsSetStatusCmd, clientsPinCmd, clientsSetOwnerCmd)

	// Task command group
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Create, edit and inspect tasks",
	}

	taskAddCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a new task",
		Long: `Add a new task. The task appears on the board immediately and is
persisted remotely; if the write fails the board reverts.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout())
			defer cancel()
			return NewTaskCommand(r.app).Add(ctx, strings.Join(args, " "), taskFlagsFrom(cmd))
		},
	}
	addTaskFlags(taskAddCmd)

	taskEditCmd := &cobra.Command{
		Use:   "edit [task id]",
		Short: "Edit an existing task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout())
			defer cancel()
			name, _ := cmd.Flags().GetString("name")
			return NewTaskCommand(r.app).Edit(ctx, args[0], name, taskFlagsFrom(cmd))
		},
	}
	addTaskFlags(taskEditCmd)
	taskEditCmd.Flags().String("name", "", "New task name")

	taskShowCmd := &cobra.Command{
		Use:   "show [task id]",
		Short: "Show one task in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout())
			defer cancel()
			return NewTaskCommand(r.app).Show(ctx, args[0])
		},
	}

	taskCmd.AddCommand(taskAddCmd, taskEditCmd, taskShowCmd)

	// Colors command group
	colorsCmd := &cobra.Command{
		Use:   "colors",
		Short: "Show and override status colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout())
			defer cancel()
			return NewColorsCommand(r.app).List(ctx)
		},
	}

	colorsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List configured status colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout())
			defer cancel()
			return NewColorsCommand(r.app).List(ctx)
		},
	}

	colorsSetCmd := &cobra.Command{
		Use:   "set [status] [hex]",
		Short: "Override a status color for this session",
		Long: `Override the color of one status. The change lasts for this session
only; the remote configuration table is never written.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout())
			defer cancel()
			return NewColorsCommand(r.app).Set(ctx, args[0], args[1])
		},
	}

	colorsCmd.AddCommand(colorsListCmd, colorsSetCmd)

	// Refresh command
	refreshCmd := &cobra.Command{
		Use:   "refresh [resource...]",
		Short: "Refetch cached resources",
		Long: `Drop the cached value of the named resources (tasks, clients,
lifecycleStages, owners) and refetch them. With no arguments every
resource is refetched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout())
			defer cancel()
			return NewRefreshCommand(r.app).Execute(ctx, args)
		},
	}

	r.cmd.AddCommand(
		boardCmd,
		deadlinesCmd,
		clientsCmd,
		taskCmd,
		colorsCmd,
		refreshCmd,
	)
}

func addTaskFlags(cmd *cobra.Command) {
	cmd.Flags().String("description", "", "Task description")
	cmd.Flags().String("status", "", "Task status")
	cmd.Flags().String("client", "", "Client name")
	cmd.Flags().String("priority", "", "Task priority")
	cmd.Flags().String("due", "", "Due date (2006-01-02)")
}

func taskFlagsFrom(cmd *cobra.Command) TaskFlags {
	flags := TaskFlags{}
	flags.Description, _ = cmd.Flags().GetString("description")
	flags.Status, _ = cmd.Flags().GetString("status")
	flags.Client, _ = cmd.Flags().GetString("client")
	flags.Priority, _ = cmd.Flags().GetString("priority")
	flags.DueDate, _ = cmd.Flags().GetString("due")
	return flags
}
