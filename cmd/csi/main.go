package main

import (
	"fmt"
	"io"
	"os"

	"github.com/phyten/csi/internal/termcolor"
)

const (
	exitOK    = 0
	exitError = 2
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr, os.Environ()))
}

// execute runs one invocation and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer, environ []string) int {
	cmd := newRootCmd(termcolor.ParseEnv(environ))
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "csi: %v\n", err)
		return exitError
	}
	return exitOK
}
