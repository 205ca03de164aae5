package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kildhq/kild/internal/gitwt"
)

var (
	commitsProject string
	commitsBase    string
	commitsJSON    bool
)

var commitsCmd = &cobra.Command{
	Use:     "commits <branch>",
	GroupID: GroupInspect,
	Short:   "List the kild branch's commits since it diverged from base",
	Args:    cobra.ExactArgs(1),
	RunE:    runCommits,
}

func init() {
	commitsCmd.Flags().StringVar(&commitsProject, "project", "", "Project path (default: detect from cwd)")
	commitsCmd.Flags().StringVar(&commitsBase, "base", "main", "Base branch")
	commitsCmd.Flags().BoolVar(&commitsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(commitsCmd)
}

func runCommits(c *cobra.Command, args []string) error {
	sess, app, err := loadSession(commitsProject, args[0])
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	commits, err := gitwt.CommitLog(sess.WorktreePath, commitsBase)
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	if commitsJSON {
		return printJSON(commits)
	}
	for _, cm := range commits {
		fmt.Printf("%s %s (%s)\n", cm.Hash[:min(8, len(cm.Hash))], cm.Subject, cm.Author)
	}
	return nil
}
