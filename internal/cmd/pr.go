package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kildhq/kild/internal/forge"
	"github.com/kildhq/kild/internal/style"
)

var (
	prListURL string
	prRefresh bool
	prJSON    bool
)

var prCmd = &cobra.Command{
	Use:     "pr <branch>",
	GroupID: GroupInspect,
	Short:   "Show (or refresh) the branch's pull-request sidecar",
	Args:    cobra.ExactArgs(1),
	RunE:    runPR,
}

func init() {
	prCmd.Flags().StringVar(&prListURL, "pr-list-url", "", "Forge PR-list page to scrape when refreshing")
	prCmd.Flags().BoolVar(&prRefresh, "refresh", false, "Re-query the forge instead of reading the cached sidecar")
	prCmd.Flags().BoolVar(&prJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(prCmd)
}

func runPR(c *cobra.Command, args []string) error {
	sess, app, err := loadSession("", args[0])
	if err != nil {
		setExit(fail(app, err))
		return nil
	}

	if prRefresh && prListURL != "" {
		browser, err := forge.New()
		if err != nil {
			setExit(fail(app, err))
			return nil
		}
		defer browser.Close()
		info, found, err := browser.LookupPR(prListURL, sess.Branch)
		if err != nil {
			setExit(fail(app, err))
			return nil
		}
		if found {
			_ = app.Store.SavePRInfo(sess.SessionID, info)
		}
	}

	info, ok := app.Store.LoadPRInfo(sess.SessionID)
	if !ok {
		fmt.Println(style.Dim.Render("no PR info recorded"))
		return nil
	}
	if prJSON {
		return printJSON(info)
	}
	fmt.Printf("PR #%d [%s] %s\n", info.Number, info.State, info.URL)
	return nil
}
