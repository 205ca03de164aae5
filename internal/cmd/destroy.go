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
	destroyProject string
	destroyForce   bool
	destroyJSON    bool
)

var destroyCmd = &cobra.Command{
	Use:     "destroy <branch>",
	GroupID: GroupLifecycle,
	Short:   "Kill the agent process, remove the worktree, and delete the session record",
	Args:    cobra.ExactArgs(1),
	RunE:    runDestroy,
}

func init() {
	destroyCmd.Flags().StringVar(&destroyProject, "project", "", "Project path (default: detect from cwd)")
	destroyCmd.Flags().BoolVar(&destroyForce, "force", false, "Destroy even with uncommitted changes")
	destroyCmd.Flags().BoolVar(&destroyJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(destroyCmd)
}

func runDestroy(c *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		setExit(fail(nil, err))
		return nil
	}
	project, err := gitwt.DetectProject(destroyProject)
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	event, err := app.Handler.DestroyKild(lifecycle.DestroyCommand{ProjectID: project.ID, Branch: args[0], Force: destroyForce})
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	logging.Event(app.Log, "kild_destroyed", zap.String("branch", event.Branch))

	if destroyJSON {
		return printJSON(event)
	}
	fmt.Printf("%s kild %s destroyed\n", style.Success.Render("✓"), style.Bold.Render(event.Branch))
	return nil
}
