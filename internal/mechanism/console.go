package mechanism

import (
	"bufio"
	"io"

	"golang.org/x/term"
)

// Console is the interactive terminal the terminal and form mechanisms talk
// to. It is opened directly rather than borrowed from stdio, so an MCP
// transport on stdin/stdout is never disturbed.
type Console struct {
	In  io.Reader
	Out io.Writer

	// lines buffers In across prompts, so text typed or pasted ahead of
	// the next question is kept for it.
	lines  *bufio.Reader
	fd     int
	closer func() error
}

// ConsoleOpener opens a console for one prompt.
type ConsoleOpener func() (*Console, error)

// NewConsole wraps arbitrary streams. The result never reports itself as a
// terminal, so password input is read as a plain line.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{In: in, Out: out, lines: bufio.NewReader(in), fd: -1}
}

// StaticConsole returns an opener that always yields c.
func StaticConsole(c *Console) ConsoleOpener {
	return func() (*Console, error) { return c, nil }
}

func (c *Console) lineReader() *bufio.Reader {
	if c.lines == nil {
		c.lines = bufio.NewReader(c.In)
	}
	return c.lines
}

// IsTerminal reports whether input comes from a real terminal.
func (c *Console) IsTerminal() bool {
	return c.fd >= 0 && term.IsTerminal(c.fd)
}

// ReadPassword reads a line with echo disabled. Only valid on a terminal.
// Closing the console does not interrupt it: after a timeout the read keeps
// waiting, with echo off, until the user presses Enter.
func (c *Console) ReadPassword() (string, error) {
	b, err := term.ReadPassword(c.fd)
	return string(b), err
}

// Close releases the console.
func (c *Console) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}
