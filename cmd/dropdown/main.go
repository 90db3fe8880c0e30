// Command dropdown is a searchable selection tool for the terminal.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rshade/dropdown/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev" //nolint:gochecknoglobals // Set by the linker.

// Exit codes.
const (
	exitOK        = 0
	exitError     = 1
	exitCancelled = 130
)

func main() {
	os.Exit(exitCode(run()))
}

func run() error {
	return cli.NewRootCmd(version).Execute()
}

// exitCode maps the command error to a process exit code and reports it.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, cli.ErrCancelled):
		return exitCancelled
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitError
	}
}
