package cmd

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/kildhq/kild/internal/gitwt"
	"github.com/kildhq/kild/internal/kilderr"
	"github.com/kildhq/kild/internal/store"
	"github.com/kildhq/kild/internal/terminal"
)

var cdProject string

var cdCmd = &cobra.Command{
	Use:     "cd <branch>",
	GroupID: GroupInspect,
	Short:   "Print the kild's worktree path, for shell eval: cd $(kild cd <branch>)",
	Args:    cobra.ExactArgs(1),
	RunE:    runCd,
}

func init() {
	cdCmd.Flags().StringVar(&cdProject, "project", "", "Project path (default: detect from cwd)")
	rootCmd.AddCommand(cdCmd)
}

func runCd(c *cobra.Command, args []string) error {
	sess, app, err := loadSession(cdProject, args[0])
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	fmt.Println(sess.WorktreePath)
	return nil
}

var codeProject string

var codeCmd = &cobra.Command{
	Use:     "code <branch>",
	GroupID: GroupInspect,
	Short:   "Open the kild's worktree in the 'code' editor",
	Args:    cobra.ExactArgs(1),
	RunE:    runCode,
}

func init() {
	codeCmd.Flags().StringVar(&codeProject, "project", "", "Project path (default: detect from cwd)")
	rootCmd.AddCommand(codeCmd)
}

func runCode(c *cobra.Command, args []string) error {
	sess, app, err := loadSession(codeProject, args[0])
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	editorCmd := exec.Command("code", sess.WorktreePath)
	if err := editorCmd.Run(); err != nil {
		setExit(fail(app, kilderr.New(kilderr.SpawnFailed, "launching editor", err)))
		return nil
	}
	return nil
}

var focusProject string

var focusCmd = &cobra.Command{
	Use:     "focus <branch>",
	GroupID: GroupInspect,
	Short:   "Focus the kild's terminal window",
	Args:    cobra.ExactArgs(1),
	RunE:    runFocus,
}

func init() {
	focusCmd.Flags().StringVar(&focusProject, "project", "", "Project path (default: detect from cwd)")
	rootCmd.AddCommand(focusCmd)
}

func runFocus(c *cobra.Command, args []string) error {
	sess, app, err := loadSession(focusProject, args[0])
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	backend, err := app.Handler.Terminal.Get(sess.TerminalID)
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	if err := backend.Focus(terminal.WindowHandle(sess.WindowHandle)); err != nil {
		setExit(fail(app, err))
		return nil
	}
	return nil
}

var hideProject string

var hideCmd = &cobra.Command{
	Use:     "hide <branch>",
	GroupID: GroupInspect,
	Short:   "Close the kild's terminal window (the agent process keeps running)",
	Args:    cobra.ExactArgs(1),
	RunE:    runHide,
}

func init() {
	hideCmd.Flags().StringVar(&hideProject, "project", "", "Project path (default: detect from cwd)")
	rootCmd.AddCommand(hideCmd)
}

func runHide(c *cobra.Command, args []string) error {
	sess, app, err := loadSession(hideProject, args[0])
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	backend, err := app.Handler.Terminal.Get(sess.TerminalID)
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	// Close is fire-and-forget: a stale or absent handle just logs.
	if err := backend.Close(terminal.WindowHandle(sess.WindowHandle)); err != nil {
		logEventErr(app, "hide_close_failed", err)
	}
	return nil
}

// loadSession resolves the project at projectPath (cwd when empty) and
// loads the session for branch within it — the common first two steps
// of every single-kild inspection/navigation command.
func loadSession(projectPath, branch string) (store.Session, *App, error) {
	app, err := newApp()
	if err != nil {
		return store.Session{}, nil, err
	}
	project, err := gitwt.DetectProject(projectPath)
	if err != nil {
		return store.Session{}, app, err
	}
	sess, err := app.Store.LoadSessionByBranch(project.ID, branch)
	return sess, app, err
}
