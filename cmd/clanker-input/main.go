package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ziggle-dev/clanker-input/internal/mechanism"
	"github.com/ziggle-dev/clanker-input/internal/runner"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

// Exit codes.
const (
	exitOK        = 0
	exitFailed    = 1
	exitCancelled = 2
)

// exitError carries a specific exit code out of a command. The command has
// already reported it, so main prints nothing more.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// app holds what commands share. Tests replace the runner and console.
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	runner  runner.Runner
	console mechanism.ConsoleOpener
	// platform overrides host detection, empty means the running host.
	platform string
	serve    serveFunc

	configPath string
	colorMode  string
	logLevel   string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		runner: runner.New(),
	}
	return a.execute(args)
}

func (a *app) execute(args []string) int {
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	_, _ = fmt.Fprintf(a.stderr, "Error: %v\n", err)
	return exitFailed
}
