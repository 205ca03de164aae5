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
	stopProject string
	stopJSON    bool
)

var stopCmd = &cobra.Command{
	Use:     "stop <branch>",
	GroupID: GroupLifecycle,
	Short:   "Kill the agent process, keep the worktree",
	Args:    cobra.ExactArgs(1),
	RunE:    runStop,
}

func init() {
	stopCmd.Flags().StringVar(&stopProject, "project", "", "Project path (default: detect from cwd)")
	stopCmd.Flags().BoolVar(&stopJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(stopCmd)
}

func runStop(c *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		setExit(fail(nil, err))
		return nil
	}
	project, err := gitwt.DetectProject(stopProject)
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	event, err := app.Handler.StopKild(lifecycle.StopCommand{ProjectID: project.ID, Branch: args[0]})
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	logging.Event(app.Log, "kild_stopped", zap.String("branch", event.Branch))
	if stopJSON {
		return printJSON(event)
	}
	fmt.Printf("%s kild %s stopped\n", style.Success.Render("✓"), style.Bold.Render(event.Branch))
	return nil
}

var (
	restartProject string
	restartJSON    bool
)

var restartCmd = &cobra.Command{
	Use:     "restart <branch>",
	GroupID: GroupLifecycle,
	Short:   "Stop if running, then re-spawn the last-known command in the existing worktree",
	Args:    cobra.ExactArgs(1),
	RunE:    runRestart,
}

func init() {
	restartCmd.Flags().StringVar(&restartProject, "project", "", "Project path (default: detect from cwd)")
	restartCmd.Flags().BoolVar(&restartJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(restartCmd)
}

func runRestart(c *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		setExit(fail(nil, err))
		return nil
	}
	project, err := gitwt.DetectProject(restartProject)
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	event, err := app.Handler.RestartKild(lifecycle.RestartCommand{ProjectID: project.ID, Branch: args[0]})
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	logging.Event(app.Log, "kild_restarted", zap.String("branch", event.Branch))
	if restartJSON {
		return printJSON(event)
	}
	fmt.Printf("%s kild %s restarted\n", style.Success.Render("✓"), style.Bold.Render(event.Branch))
	return nil
}

var (
	openProject string
	openAgent   string
	openJSON    bool
)

var openCmd = &cobra.Command{
	Use:     "open <branch>",
	GroupID: GroupLifecycle,
	Short:   "Attach a second terminal to an already-existing worktree",
	Args:    cobra.ExactArgs(1),
	RunE:    runOpen,
}

func init() {
	openCmd.Flags().StringVar(&openProject, "project", "", "Project path (default: detect from cwd)")
	openCmd.Flags().StringVar(&openAgent, "agent", "", "Agent id (default: the kild's own agent)")
	openCmd.Flags().BoolVar(&openJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(openCmd)
}

func runOpen(c *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		setExit(fail(nil, err))
		return nil
	}
	project, err := gitwt.DetectProject(openProject)
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	event, err := app.Handler.OpenKild(lifecycle.OpenCommand{ProjectID: project.ID, Branch: args[0], Agent: openAgent})
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	logging.Event(app.Log, "kild_opened", zap.String("branch", event.Branch))
	if openJSON {
		return printJSON(event)
	}
	fmt.Printf("%s second terminal opened for %s\n", style.Success.Render("✓"), style.Bold.Render(event.Branch))
	return nil
}
