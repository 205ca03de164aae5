package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kildhq/kild/internal/gitwt"
	"github.com/kildhq/kild/internal/lifecycle"
	"github.com/kildhq/kild/internal/logging"
	"github.com/kildhq/kild/internal/style"
)

var (
	syncProject string
	syncRemote  string
	syncBase    string
	syncJSON    bool
)

// syncCmd implements both "sync" and "rebase" — the spec describes them
// as the same fetch-then-rebase operation under two names.
var syncCmd = &cobra.Command{
	Use:     "sync <branch>",
	Aliases: []string{"rebase"},
	GroupID: GroupLifecycle,
	Short:   "Fetch remote and rebase the kild's worktree onto base, surfacing conflicts as data",
	Args:    cobra.ExactArgs(1),
	RunE:    runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncProject, "project", "", "Project path (default: detect from cwd)")
	syncCmd.Flags().StringVar(&syncRemote, "remote", "origin", "Remote to fetch")
	syncCmd.Flags().StringVar(&syncBase, "base", "main", "Branch to rebase onto")
	syncCmd.Flags().BoolVar(&syncJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(syncCmd)
}

func runSync(c *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		setExit(fail(nil, err))
		return nil
	}
	project, err := gitwt.DetectProject(syncProject)
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	event, err := app.Handler.SyncKild(lifecycle.SyncCommand{
		ProjectID:  project.ID,
		Branch:     args[0],
		Remote:     syncRemote,
		BaseBranch: syncBase,
	})
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	logging.Event(app.Log, "kild_synced", zap.String("branch", event.Branch), zap.Bool("conflicted", event.Result.Conflicted))

	if syncJSON {
		return printJSON(event)
	}
	if event.Result.Conflicted {
		fmt.Printf("%s rebase conflicts in %s:\n", style.Warn.Render("!"), style.Bold.Render(event.Branch))
		for _, f := range event.Result.ConflictFiles {
			fmt.Printf("  %s\n", f)
		}
		return nil
	}
	fmt.Printf("%s kild %s synced onto %s\n", style.Success.Render("✓"), style.Bold.Render(event.Branch), syncBase)
	return nil
}
