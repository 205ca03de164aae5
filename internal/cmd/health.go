package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kildhq/kild/internal/health"
)

var (
	healthDays int
	healthJSON bool
)

var healthCmd = &cobra.Command{
	Use:     "health",
	GroupID: GroupInspect,
	Short:   "Show aggregate health history over recent days (see also: status)",
	RunE:    runHealth,
}

func init() {
	healthCmd.Flags().IntVar(&healthDays, "days", 7, "Number of days of retained history to summarize")
	healthCmd.Flags().BoolVar(&healthJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(healthCmd)
}

func runHealth(c *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		setExit(fail(nil, err))
		return nil
	}
	if !app.Config.Health.HistoryEnabled {
		fmt.Println("health history is disabled (health.history_enabled = false)")
		return nil
	}

	hist := health.NewHistory(app.Store.BaseDir + "/health_history")
	snaps, err := hist.Recent(healthDays)
	if err != nil {
		setExit(fail(app, err))
		return nil
	}

	if healthJSON {
		return printJSON(snaps)
	}
	if len(snaps) == 0 {
		fmt.Println("no recorded health snapshots yet")
		return nil
	}
	for _, s := range snaps {
		fmt.Printf("%s  total=%d  avg_cpu=%.1f%%  mem=%.0fMB  %v\n",
			s.Timestamp.Format("2006-01-02T15:04"), s.Total, s.AverageCPU, s.TotalMemoryMB, s.ByClass)
	}
	return nil
}
