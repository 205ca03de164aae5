package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kildhq/kild/internal/gitwt"
	"github.com/kildhq/kild/internal/style"
)

var (
	overlapsProject string
	overlapsBase    string
	overlapsJSON    bool
)

var overlapsCmd = &cobra.Command{
	Use:     "overlaps",
	GroupID: GroupInspect,
	Short:   "Report files touched by more than one kild sharing a base branch",
	RunE:    runOverlaps,
}

func init() {
	overlapsCmd.Flags().StringVar(&overlapsProject, "project", "", "Project path (default: detect from cwd)")
	overlapsCmd.Flags().StringVar(&overlapsBase, "base", "main", "Base branch to diff every kild against")
	overlapsCmd.Flags().BoolVar(&overlapsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(overlapsCmd)
}

func runOverlaps(c *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		setExit(fail(nil, err))
		return nil
	}
	project, err := gitwt.DetectProject(overlapsProject)
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	sessions, _, err := app.Store.ListSessions()
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	sessions = filterByProject(sessions, project.ID)

	kilds := make([]gitwt.KildDiff, 0, len(sessions))
	for _, s := range sessions {
		kilds = append(kilds, gitwt.KildDiff{Branch: s.Branch, WorktreePath: s.WorktreePath})
	}
	report := gitwt.CollectFileOverlaps(kilds, overlapsBase)

	if overlapsJSON {
		return printJSON(report)
	}
	if len(report.Overlapping) == 0 {
		fmt.Println(style.Success.Render("no overlapping files"))
		return nil
	}
	for _, o := range report.Overlapping {
		fmt.Printf("%s %s\n", style.Warn.Render(o.File), o.Branches)
	}
	return nil
}
