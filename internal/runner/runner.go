// Package runner executes external processes on behalf of the input
// mechanisms. Mechanisms depend on the Runner interface so tests can replace
// process execution with scripted results.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/ziggle-dev/clanker-input/internal/escape"
)

// ErrNotFound is returned when the executable cannot be located.
var ErrNotFound = exec.ErrNotFound

// Command describes one process invocation.
type Command struct {
	Name string
	Args []string
	// Stdin is optional input for the process; nil means no input.
	Stdin io.Reader
}

// String renders the command as a POSIX shell line, for dry runs and logs.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, arg := range c.Args {
		if arg == "" || strings.ContainsAny(arg, " \t\n\r\"'\\$`;&|<>(){}*?!#~") {
			parts = append(parts, `"`+escape.Shell(arg)+`"`)
		} else {
			parts = append(parts, arg)
		}
	}
	return strings.Join(parts, " ")
}

// Result is what a finished process reported. A non-zero ExitCode is data,
// not an error.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs commands and probes for executables.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
	LookPath(name string) (string, error)
}

// Exec is the Runner backed by os/exec.
type Exec struct{}

// New returns the os/exec backed Runner.
func New() *Exec {
	return &Exec{}
}

// Run starts the command and waits for it. It returns an error only when the
// process could not be started or the context ended first.
func (e *Exec) Run(ctx context.Context, c Command) (Result, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Stdin = c.Stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, ctxErr
	}

	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("failed to start %s: %w", c.Name, err)
	}

	return result, nil
}

// LookPath reports where name lives on PATH.
func (e *Exec) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// TrimOutput strips the trailing line break a dialog tool prints after the
// answer. Leading and inner whitespace belong to the answer.
func TrimOutput(s string) string {
	return strings.TrimRight(s, "\r\n")
}
