// inictl reads and edits INI files without losing comments.
package main

import (
	"fmt"
	"os"

	"ini-lite/internal/cmd"
)

var (
	run    = func() error { return cmd.Execute() }
	osExit = os.Exit
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		osExit(1)
	}
}
