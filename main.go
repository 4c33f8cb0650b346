package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/speechmatics/smcli/cmd"
)

func main() {
	// A symlink named after the legacy one-shot script behaves like it:
	// flags go straight to the process command.
	name := strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe")
	switch name {
	case "speechmatics", "speechmatics.py":
		cmd.ExecuteProcess()
	default:
		cmd.Execute()
	}
}
