package cmd

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kildhq/kild/internal/gitwt"
	"github.com/kildhq/kild/internal/health"
	"github.com/kildhq/kild/internal/tui/dashboard"
)

var dashboardProject string

// dashboardCmd is an optional interactive view, not part of the stable
// CLI surface — scripts should use `status --json` instead.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	GroupID: GroupInspect,
	Short:   "Interactive live view of every tracked kild (not scripting-stable)",
	RunE:    runDashboard,
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardProject, "project", "", "Project path (default: detect from cwd)")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(c *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		setExit(fail(nil, err))
		return nil
	}
	project, err := gitwt.DetectProject(dashboardProject)
	if err != nil {
		setExit(fail(app, err))
		return nil
	}

	cfg := health.NewConfig(time.Duration(app.Config.Health.IdleThresholdMinutes) * time.Minute)
	load := func() ([]dashboard.Row, error) {
		sessions, _, err := app.Store.ListSessions()
		if err != nil {
			return nil, err
		}
		sessions = filterByProject(sessions, project.ID)
		now := time.Now()
		metrics := reconcileAll(app, sessions, cfg, now)
		return dashboard.RowsFromSessions(sessions, metrics), nil
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "kild dashboard requires an interactive terminal; use 'kild status --json' for scripting")
		setExit(1)
		return nil
	}

	m := dashboard.New(load)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		setExit(fail(app, err))
		return nil
	}
	return nil
}
