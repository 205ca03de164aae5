package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kildhq/kild/internal/gitwt"
	"github.com/kildhq/kild/internal/health"
	"github.com/kildhq/kild/internal/store"
	"github.com/kildhq/kild/internal/style"
)

var (
	statusProject string
	statusJSON    bool
)

var statusCmd = &cobra.Command{
	Use:     "status",
	GroupID: GroupInspect,
	Short:   "Reconcile and show every kild's health classification",
	RunE:    runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusProject, "project", "", "Project path (default: detect from cwd)")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(c *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		setExit(fail(nil, err))
		return nil
	}
	project, err := gitwt.DetectProject(statusProject)
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	sessions, _, err := app.Store.ListSessions()
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	sessions = filterByProject(sessions, project.ID)

	cfg := health.NewConfig(time.Duration(app.Config.Health.IdleThresholdMinutes) * time.Minute)
	now := time.Now()
	metrics := reconcileAll(app, sessions, cfg, now)

	if app.Config.Health.HistoryEnabled {
		hist := health.NewHistory(app.Store.BaseDir + "/health_history")
		snap := health.Aggregate(metrics, now)
		_ = hist.Append(snap)
		_ = hist.Prune(now, app.Config.Health.HistoryRetentionDays)
	}

	if statusJSON {
		return printJSON(metrics)
	}
	printHealthTable(sessions, metrics)
	return nil
}

func reconcileAll(app *App, sessions []store.Session, cfg *health.Config, now time.Time) []health.Metrics {
	out := make([]health.Metrics, 0, len(sessions))
	for _, sess := range sessions {
		agentStatus, ok := app.Store.LoadAgentStatus(sess.SessionID)
		out = append(out, health.Reconcile(sess, agentStatus, ok, cfg, now))
	}
	return out
}

func printHealthTable(sessions []store.Session, metrics []health.Metrics) {
	if len(metrics) == 0 {
		fmt.Println(style.Dim.Render("no kilds"))
		return
	}
	byID := map[string]store.Session{}
	for _, s := range sessions {
		byID[s.SessionID] = s
	}
	t := style.NewTable(
		style.Column{Name: "BRANCH", Width: 24},
		style.Column{Name: "HEALTH", Width: 8},
		style.Column{Name: "CPU%", Width: 6, Align: style.AlignRight},
		style.Column{Name: "MEM(MB)", Width: 9, Align: style.AlignRight},
	)
	for _, m := range metrics {
		branch := byID[m.SessionID].Branch
		t.AddRow(branch, health.Icon(m.Class)+" "+string(m.Class), fmt.Sprintf("%.1f", m.CPUPercent), fmt.Sprintf("%.1f", m.MemoryMB))
	}
	fmt.Print(t.Render())
}
