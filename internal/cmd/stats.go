package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kildhq/kild/internal/gitwt"
	"github.com/kildhq/kild/internal/health"
	"github.com/kildhq/kild/internal/style"
)

var (
	statsProject string
	statsJSON    bool
)

var statsCmd = &cobra.Command{
	Use:     "stats <branch>",
	GroupID: GroupInspect,
	Short:   "Show one kild's resource usage, health, and working-tree diff stats",
	Args:    cobra.ExactArgs(1),
	RunE:    runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsProject, "project", "", "Project path (default: detect from cwd)")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(statsCmd)
}

// statsReport is the combined view "stats" prints: health metrics
// alongside the worktree's unstaged diff stats.
type statsReport struct {
	Health health.Metrics `json:"health"`
	Diff   gitwt.DiffStats `json:"diff"`
}

func runStats(c *cobra.Command, args []string) error {
	sess, app, err := loadSession(statsProject, args[0])
	if err != nil {
		setExit(fail(app, err))
		return nil
	}

	cfg := health.NewConfig(time.Duration(app.Config.Health.IdleThresholdMinutes) * time.Minute)
	agentStatus, ok := app.Store.LoadAgentStatus(sess.SessionID)
	m := health.Reconcile(sess, agentStatus, ok, cfg, time.Now())

	diff, err := gitwt.DiffStatsFor(sess.WorktreePath)
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	report := statsReport{Health: m, Diff: diff}

	if statsJSON {
		return printJSON(report)
	}
	fmt.Printf("%s %s\n", style.Bold.Render(sess.Branch), health.Icon(m.Class)+" "+string(m.Class))
	fmt.Printf("  cpu: %.1f%%  mem: %.1fMB\n", m.CPUPercent, m.MemoryMB)
	fmt.Printf("  diff: +%d -%d across %d files\n", diff.Insertions, diff.Deletions, diff.FilesChanged)
	return nil
}
