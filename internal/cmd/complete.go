package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kildhq/kild/internal/forge"
	"github.com/kildhq/kild/internal/gitwt"
	"github.com/kildhq/kild/internal/lifecycle"
	"github.com/kildhq/kild/internal/logging"
	"github.com/kildhq/kild/internal/style"
)

var (
	completeProject    string
	completeBaseBranch string
	completePRListURL  string
	completeJSON       bool
)

var completeCmd = &cobra.Command{
	Use:     "complete <branch>",
	GroupID: GroupLifecycle,
	Short:   "Check the branch's PR (if configured), then destroy the kild",
	Args:    cobra.ExactArgs(1),
	RunE:    runComplete,
}

func init() {
	completeCmd.Flags().StringVar(&completeProject, "project", "", "Project path (default: detect from cwd)")
	completeCmd.Flags().StringVar(&completeBaseBranch, "base", "main", "Base branch the kild's PR targets")
	completeCmd.Flags().StringVar(&completePRListURL, "pr-list-url", "", "Forge PR-list page to check before destroying (skipped when empty)")
	completeCmd.Flags().BoolVar(&completeJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(completeCmd)
}

func runComplete(c *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		setExit(fail(nil, err))
		return nil
	}
	project, err := gitwt.DetectProject(completeProject)
	if err != nil {
		setExit(fail(app, err))
		return nil
	}

	var browser *forge.Browser
	if completePRListURL != "" {
		browser, err = forge.New()
		if err != nil {
			logging.Event(app.Log, "forge_launch_failed", zap.Error(err))
			browser = nil
		} else {
			defer browser.Close()
		}
	}

	event, err := app.Handler.CompleteKild(lifecycle.CompleteCommand{
		ProjectID:  project.ID,
		Branch:     args[0],
		BaseBranch: completeBaseBranch,
		PRListURL:  completePRListURL,
		Browser:    browser,
	})
	if err != nil {
		setExit(fail(app, err))
		return nil
	}
	logging.Event(app.Log, "kild_completed", zap.String("branch", event.Branch), zap.Bool("pr_merged", event.PRMerged))

	if completeJSON {
		return printJSON(event)
	}
	fmt.Printf("%s kild %s completed (pr_merged=%v)\n", style.Success.Render("✓"), style.Bold.Render(event.Branch), event.PRMerged)
	return nil
}
