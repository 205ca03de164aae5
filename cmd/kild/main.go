// kild manages disposable git-worktree sandboxes for coding agents.
package main

import (
	"os"

	"github.com/kildhq/kild/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
