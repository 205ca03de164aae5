package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kildhq/kild/internal/lifecycle"
	"github.com/kildhq/kild/internal/logging"
	"github.com/kildhq/kild/internal/style"
)

var (
	createAgent    string
	createNote     string
	createProject  string
	createTerminal string
	createJSON     bool
)

var createCmd = &cobra.Command{
	Use:     "create <branch>",
	GroupID: GroupLifecycle,
	Short:   "Create a new kild: worktree, spawned agent terminal, session record",
	Args:    cobra.ExactArgs(1),
	RunE:    runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createAgent, "agent", "", "Agent id (default: config's agent.default)")
	createCmd.Flags().StringVar(&createNote, "note", "", "Free-form note attached to the session")
	createCmd.Flags().StringVar(&createProject, "project", "", "Project path (default: detect from cwd)")
	createCmd.Flags().StringVar(&createTerminal, "terminal", "", "Terminal backend id (default: config preferred, else auto-detect)")
	createCmd.Flags().BoolVar(&createJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(createCmd)
}

func runCreate(c *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		setExit(fail(nil, err))
		return nil
	}

	event, err := app.Handler.CreateKild(lifecycle.CreateCommand{
		Branch:      args[0],
		Agent:       createAgent,
		Note:        createNote,
		ProjectPath: createProject,
		TerminalID:  createTerminal,
	})
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	logging.Event(app.Log, "kild_created", zap.String("branch", event.Branch), zap.String("session_id", event.SessionID))

	if createJSON {
		return printJSON(event)
	}
	fmt.Printf("%s kild %s created (session %s)\n", style.Success.Render("✓"), style.Bold.Render(event.Branch), event.SessionID)
	return nil
}
