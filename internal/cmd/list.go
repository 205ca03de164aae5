package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kildhq/kild/internal/gitwt"
	"github.com/kildhq/kild/internal/store"
	"github.com/kildhq/kild/internal/style"
)

var (
	listProject string
	listAll     bool
	listJSON    bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	GroupID: GroupInspect,
	Short:   "List kilds",
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVar(&listProject, "project", "", "Project path (default: detect from cwd)")
	listCmd.Flags().BoolVar(&listAll, "all", false, "Include kilds from every enlisted project")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(c *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		setExit(fail(nil, err))
		return nil
	}
	sessions, warnings, err := app.Store.ListSessions()
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	for _, w := range warnings {
		logEventErr(app, "session_record_skipped", fmt.Errorf("%s", w))
	}

	if !listAll {
		project, err := gitwt.DetectProject(listProject)
		if err != nil {
			setExit(fail(app, err))
			return nil
		}
		sessions = filterByProject(sessions, project.ID)
	}

	if listJSON {
		return printJSON(sessions)
	}
	printSessionTable(sessions)
	return nil
}

func filterByProject(sessions []store.Session, projectID string) []store.Session {
	var out []store.Session
	for _, s := range sessions {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	return out
}

func printSessionTable(sessions []store.Session) {
	if len(sessions) == 0 {
		fmt.Println(style.Dim.Render("no kilds"))
		return
	}
	t := style.NewTable(
		style.Column{Name: "BRANCH", Width: 24},
		style.Column{Name: "AGENT", Width: 10},
		style.Column{Name: "STATUS", Width: 10},
		style.Column{Name: "PORTS", Width: 13},
		style.Column{Name: "NOTE", Width: 24},
	)
	for _, s := range sessions {
		ports := fmt.Sprintf("%d-%d", s.Ports.Start, s.Ports.End)
		t.AddRow(s.Branch, s.Agent, string(s.Status), ports, s.Note)
	}
	fmt.Print(t.Render())
}
