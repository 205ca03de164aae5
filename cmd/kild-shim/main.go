// kild-shim is the wrapper binary every spawned terminal pane runs as
// its actual command. It wires up KILD_SHIM_LOG/KILD_SHIM_SESSION
// logging, then execs the real agent command so the shim never sits
// between the terminal and the agent process once launch succeeds.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kildhq/kild/internal/util"
)

func main() {
	log := setupLogging()
	defer func() {
		if log != nil {
			_ = log.Sync()
		}
	}()

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "kild-shim: no command given")
		os.Exit(1)
	}

	bin, err := exec.LookPath(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "kild-shim: %v\n", err)
		if log != nil {
			log.Error("shim_run_failed", zap.Error(err))
		}
		os.Exit(1)
	}

	if log != nil {
		log.Info("shim_exec", zap.String("command", args[0]))
	}
	env := os.Environ()
	if err := syscall.Exec(bin, args, env); err != nil {
		fmt.Fprintf(os.Stderr, "kild-shim: exec failed: %v\n", err)
		if log != nil {
			log.Error("shim_run_failed", zap.Error(err))
		}
		os.Exit(1)
	}
}

// setupLogging mirrors the original shim's env contract: KILD_SHIM_LOG
// unset disables logging entirely; "1"/"true" routes to the per-session
// default path; any other value is an explicit log file path.
func setupLogging() *zap.Logger {
	setting, isSet := os.LookupEnv("KILD_SHIM_LOG")
	if !isSet {
		return nil
	}

	var logPath string
	switch setting {
	case "1", "true":
		sessionID := os.Getenv("KILD_SHIM_SESSION")
		if sessionID == "" {
			return nil
		}
		dir := filepath.Join(util.ExpandHome("~/.kild"), "shim", sessionID)
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "kild-shim: failed to create log directory %s: %v\n", dir, err)
			return nil
		}
		logPath = filepath.Join(dir, "shim.log")
	default:
		logPath = setting
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(cfg)

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kild-shim: failed to open log file %s: %v\n", logPath, err)
		return nil
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(f), zapcore.InfoLevel)
	return zap.New(core)
}
