package mechanism

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/ziggle-dev/clanker-input/internal/escape"
	"github.com/ziggle-dev/clanker-input/internal/prompt"
)

var (
	terminalTitleStyle  = lipgloss.NewStyle().Bold(true)
	terminalNumberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	terminalHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Terminal is the last-resort line prompt on the controlling terminal.
type Terminal struct {
	open ConsoleOpener
}

// NewTerminal returns the terminal mechanism. A nil opener uses OpenConsole.
func NewTerminal(open ConsoleOpener) *Terminal {
	if open == nil {
		open = OpenConsole
	}
	return &Terminal{open: open}
}

func (t *Terminal) Name() string {
	return NameTerminal
}

// Available is always true: the terminal is the end of every fallback chain.
func (t *Terminal) Available() bool {
	return true
}

// Present asks on the console and reads one answer.
func (t *Terminal) Present(ctx context.Context, req prompt.Request) prompt.Outcome {
	console, err := t.open()
	if err != nil {
		if errors.Is(err, prompt.ErrUnavailable) {
			return prompt.Fail(err)
		}
		return prompt.Failf(prompt.ErrUnavailable, "terminal: %v", err)
	}
	defer func() { _ = console.Close() }()

	out := console.Out
	_, _ = fmt.Fprintln(out, terminalTitleStyle.Render(escape.Line(req.TitleOrDefault())))

	switch req.Kind {
	case prompt.KindDropdown:
		return t.presentMenu(ctx, console, req)
	case prompt.KindPassword:
		_, _ = fmt.Fprintf(out, "%s: ", escape.Line(req.Text))
		var answer string
		if console.IsTerminal() {
			answer, err = readWithContext(ctx, console.ReadPassword)
			_, _ = fmt.Fprintln(out)
		} else {
			answer, err = readLine(ctx, console.lineReader())
		}
		if err != nil {
			return readFailure(err)
		}
		return prompt.Answer(cleanInput(answer))
	default:
		if req.Default != nil {
			_, _ = fmt.Fprintf(out, "%s %s: ", escape.Line(req.Text), terminalHintStyle.Render("["+escape.Line(*req.Default)+"]"))
		} else {
			_, _ = fmt.Fprintf(out, "%s: ", escape.Line(req.Text))
		}
		answer, err := readLine(ctx, console.lineReader())
		if err != nil {
			return readFailure(err)
		}
		answer = cleanInput(answer)
		if answer == "" && req.Default != nil {
			answer = *req.Default
		}
		return prompt.Answer(answer)
	}
}

// presentMenu renders a numbered menu and maps the entered number back to
// its choice. An empty entry picks the default.
func (t *Terminal) presentMenu(ctx context.Context, console *Console, req prompt.Request) prompt.Outcome {
	out := console.Out
	_, _ = fmt.Fprintln(out, escape.Line(req.Text))
	for i, choice := range req.Choices {
		_, _ = fmt.Fprintf(out, "  %s %s\n", terminalNumberStyle.Render(fmt.Sprintf("%d)", i+1)), escape.Line(choice))
	}

	def := req.DefaultChoiceIndex()
	_, _ = fmt.Fprintf(out, "Select 1-%d %s: ", len(req.Choices), terminalHintStyle.Render(fmt.Sprintf("[%d]", def+1)))

	answer, err := readLine(ctx, console.lineReader())
	if err != nil {
		return readFailure(err)
	}

	answer = strings.TrimSpace(cleanInput(answer))
	if answer == "" {
		return prompt.Answer(req.Choices[def])
	}

	n, err := strconv.Atoi(answer)
	if err != nil {
		return prompt.Failf(prompt.ErrMechanism, "terminal: invalid selection %q", answer)
	}
	if n < 1 || n > len(req.Choices) {
		return prompt.Failf(prompt.ErrMechanism, "terminal: selection %d out of range 1-%d", n, len(req.Choices))
	}
	return prompt.Answer(req.Choices[n-1])
}

// readFailure maps a read error: end of input and context expiry are
// cancellation, anything else is a failure.
func readFailure(err error) prompt.Outcome {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return prompt.Cancel()
	}
	return prompt.Failf(prompt.ErrMechanism, "terminal: %v", err)
}

// readLine reads one line. A final line without a newline is still an
// answer; EOF before any input is returned as io.EOF.
func readLine(ctx context.Context, br *bufio.Reader) (string, error) {
	return readWithContext(ctx, func() (string, error) {
		line, err := br.ReadString('\n')
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return line, err
	})
}

// readWithContext stops waiting on read when ctx ends. A line read is
// unblocked when the caller closes the console; a password read is not (see
// Console.ReadPassword).
func readWithContext(ctx context.Context, read func() (string, error)) (string, error) {
	type result struct {
		s   string
		err error
	}
	ch := make(chan result, 1)
	go func() {
		s, err := read()
		ch <- result{s, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.s, r.err
	}
}

// cleanInput drops the line terminator and control characters a terminal
// can smuggle into a line (escape sequences, NUL, BEL). Tabs are kept.
func cleanInput(s string) string {
	s = strings.TrimRight(s, "\r\n")
	return strings.Map(func(r rune) rune {
		if r != '\t' && unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
