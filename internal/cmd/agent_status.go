package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kildhq/kild/internal/gitwt"
	"github.com/kildhq/kild/internal/kilderr"
	"github.com/kildhq/kild/internal/lifecycle"
	"github.com/kildhq/kild/internal/store"
)

var (
	agentStatusProject string
	agentStatusNotify  bool
)

var agentStatusCmd = &cobra.Command{
	Use:     "agent-status <branch> <status>",
	GroupID: GroupLifecycle,
	Short:   "Poke the agent-status sidecar; status is one of working, idle, waiting, done, error",
	Args:    cobra.ExactArgs(2),
	RunE:    runAgentStatus,
}

func init() {
	agentStatusCmd.Flags().StringVar(&agentStatusProject, "project", "", "Project path (default: detect from cwd)")
	agentStatusCmd.Flags().BoolVar(&agentStatusNotify, "notify", false, "Fire a desktop notification when status is waiting/error")
	rootCmd.AddCommand(agentStatusCmd)
}

func runAgentStatus(c *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		setExit(fail(nil, err))
		return nil
	}
	project, err := gitwt.DetectProject(agentStatusProject)
	if err != nil {
		setExit(fail(app, err))
		return nil
	}

	status, err := parseAgentStatus(args[1])
	if err != nil {
		setExit(fail(app, err))
		return nil
	}

	err = app.Handler.UpdateAgentStatus(lifecycle.UpdateAgentStatusCommand{
		ProjectID: project.ID,
		Branch:    args[0],
		Status:    status,
		Notify:    agentStatusNotify,
	})
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	fmt.Println("ok")
	return nil
}

func parseAgentStatus(s string) (store.AgentStatus, error) {
	switch store.AgentStatus(s) {
	case store.AgentWorking, store.AgentIdle, store.AgentWaiting, store.AgentDone, store.AgentError:
		return store.AgentStatus(s), nil
	default:
		return "", kilderr.ErrInvalidAgentStatus(s)
	}
}
