package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kildhq/kild/internal/cleanup"
	"github.com/kildhq/kild/internal/gitwt"
	"github.com/kildhq/kild/internal/kilderr"
	"github.com/kildhq/kild/internal/logging"
	"github.com/kildhq/kild/internal/style"
)

var (
	cleanupProject  string
	cleanupStrategy string
	cleanupJSON     bool
)

var cleanupCmd = &cobra.Command{
	Use:     "cleanup",
	GroupID: GroupMaintenance,
	Short:   "Find and remove orphaned sessions, worktrees, and branches",
	RunE:    runCleanup,
}

func init() {
	cleanupCmd.Flags().StringVar(&cleanupProject, "project", "", "Project path (default: detect from cwd)")
	cleanupCmd.Flags().StringVar(&cleanupStrategy, "strategy", "dry_run", "dry_run, safe, or aggressive")
	cleanupCmd.Flags().BoolVar(&cleanupJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(c *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		setExit(fail(nil, err))
		return nil
	}
	project, err := gitwt.DetectProject(cleanupProject)
	if err != nil {
		setExit(fail(app, err))
		return nil
	}

	strategy := cleanup.Strategy(cleanupStrategy)
	switch strategy {
	case cleanup.DryRun, cleanup.Safe, cleanup.Aggressive:
	default:
		setExit(fail(app, kilderr.ErrInvalidConfiguration(fmt.Sprintf("unknown cleanup strategy %q", cleanupStrategy))))
		return nil
	}

	sessions, _, err := app.Store.ListSessions()
	if err != nil {
		setExit(fail(app, err))
		return nil
	}

	g := gitwt.New(project.Path)
	orphans, err := cleanup.Scan(g, project.ID, sessions)
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	if len(orphans) == 0 {
		setExit(fail(app, kilderr.ErrNoOrphanedResources()))
		return nil
	}

	summary := cleanup.Run(orphans, strategy, func(o cleanup.Orphan) error {
		return removeOrphan(app, g, o)
	})

	logging.Event(app.Log, "kild_cleanup", zap.String("strategy", string(strategy)),
		zap.Int("total", summary.Total), zap.Int("succeeded", summary.Succeeded), zap.Int("failed", summary.Failed))

	if cleanupJSON {
		return printJSON(struct {
			Orphans []cleanup.Orphan `json:"orphans"`
			Summary cleanup.Summary  `json:"summary"`
		}{orphans, summary})
	}
	for _, o := range orphans {
		fmt.Printf("%s %s: %s\n", style.Warn.Render(string(o.Type)), o.Ref, o.Reason)
	}
	fmt.Printf("%d orphans, %d removed, %d failed\n", summary.Total, summary.Succeeded, summary.Failed)
	return nil
}

func removeOrphan(app *App, g *gitwt.Git, o cleanup.Orphan) error {
	switch o.Type {
	case cleanup.ResourceSession:
		return app.Store.DeleteSession(o.Ref)
	case cleanup.ResourceWorktree:
		return g.RemoveWorktree(o.Ref, true)
	case cleanup.ResourceBranch:
		_, err := g.Run("branch", "-D", o.Ref)
		return err
	default:
		return nil
	}
}
