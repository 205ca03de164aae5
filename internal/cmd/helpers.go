package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/kildhq/kild/internal/config"
	"github.com/kildhq/kild/internal/kilderr"
	"github.com/kildhq/kild/internal/lifecycle"
	"github.com/kildhq/kild/internal/logging"
	"github.com/kildhq/kild/internal/store"
	"github.com/kildhq/kild/internal/util"
)

// App wires the subsystems every command needs: a resolved config, the
// session store, the lifecycle handler, and a logger at the verbosity
// the global flags selected.
type App struct {
	Config  config.Config
	Store   *store.Store
	Handler *lifecycle.Handler
	Log     *zap.Logger
}

const defaultBaseDirName = "~/.kild"

func baseDir() string {
	if v := os.Getenv("KILD_BASE_DIR"); v != "" {
		return util.ExpandHome(v)
	}
	return util.ExpandHome(defaultBaseDirName)
}

// newApp resolves config, builds the store and lifecycle handler, and
// sets up logging per the global --verbose/--quiet flags.
func newApp() (*App, error) {
	dir := baseDir()
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	s := store.New(dir)
	level := logging.LevelNormal
	switch {
	case verboseFlag:
		level = logging.LevelVerbose
	case quietFlag:
		level = logging.LevelQuiet
	}
	return &App{
		Config:  cfg,
		Store:   s,
		Handler: lifecycle.NewHandler(s, cfg),
		Log:     logging.New(level),
	}, nil
}

// printJSON writes v to stdout as indented JSON — the sole output
// contract for every --json invocation, never mixed with log lines.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitCodeFor maps an error to the process exit code the CLI surface
// promises: 0 on nil, 2 for "nothing to do" conditions, 1 otherwise.
func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if kind, ok := kilderr.Of(err); ok && kind == kilderr.NoOrphanedResources {
		return 2
	}
	return 1
}

// logEventErr records a best-effort failure as a structured log line
// without affecting the command's exit code — used for operations the
// spec documents as fire-and-forget (e.g. closing a terminal window).
func logEventErr(app *App, event string, err error) {
	if app == nil {
		return
	}
	logging.Event(app.Log, event, zap.Error(err))
}

// fail prints a one-line diagnostic for every error and, for internal
// errors, also logs the full error as a structured record at Error
// level, then returns the process exit code the caller should use via
// os.Exit.
func fail(app *App, err error) int {
	fmt.Fprintln(os.Stderr, err.Error())
	if kErr, ok := err.(*kilderr.Error); ok && kErr.IsUserError() {
		return exitCodeFor(err)
	}
	if app != nil {
		app.Log.Error("command_failed", zap.Error(err))
	}
	return exitCodeFor(err)
}
