// Command notebookd is a thin CLI delegating to the notebookd storage
// engine (spec.md §6.6): it is not part of the hard core and can be
// replaced without touching pkg/engine.
package main

import (
	"fmt"
	"os"

	"github.com/vxnote/notebookd/cmd/notebookd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
