package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kildhq/kild/internal/gitwt"
)

var (
	diffProject string
	diffJSON    bool
)

var diffCmd = &cobra.Command{
	Use:     "diff <branch>",
	GroupID: GroupInspect,
	Short:   "Show unstaged diff stats for a kild's worktree",
	Args:    cobra.ExactArgs(1),
	RunE:    runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffProject, "project", "", "Project path (default: detect from cwd)")
	diffCmd.Flags().BoolVar(&diffJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(c *cobra.Command, args []string) error {
	sess, app, err := loadSession(diffProject, args[0])
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	stats, err := gitwt.DiffStatsFor(sess.WorktreePath)
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	if diffJSON {
		return printJSON(stats)
	}
	fmt.Printf("+%d -%d across %d files\n", stats.Insertions, stats.Deletions, stats.FilesChanged)
	return nil
}
