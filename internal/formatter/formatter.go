// Package formatter prints responses and dry-run plans for people.
package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ziggle-dev/clanker-input/internal/chain"
	"github.com/ziggle-dev/clanker-input/internal/dispatch"
	"github.com/ziggle-dev/clanker-input/internal/request"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds formatter options.
type Config struct {
	Output io.Writer
	Format string // text or json
	Color  bool   // style text output
}

// Formatter writes responses.
type Formatter struct {
	out    io.Writer
	format string
	color  bool
}

// New creates a Formatter.
func New(cfg Config) *Formatter {
	format := cfg.Format
	if format == "" {
		format = FormatText
	}
	return &Formatter{out: cfg.Output, format: format, color: cfg.Color}
}

// Response writes one response.
func (f *Formatter) Response(resp request.Response) error {
	if f.format == FormatJSON {
		b, err := resp.JSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(f.out, string(b))
		return err
	}

	if !f.color {
		_, err := fmt.Fprintln(f.out, resp.Message())
		return err
	}

	switch resp.Status {
	case request.StatusAnswered:
		if answers, ok := resp.Data["answers"].(*chain.AnswerSet); ok {
			_, err := fmt.Fprintln(f.out, answerTable(answers))
			return err
		}
		_, err := fmt.Fprintf(f.out, "%s %s\n", successIcon, resp.Output)
		return err
	case request.StatusCancelled:
		_, err := fmt.Fprintf(f.out, "%s %s\n", cancelIcon, dimStyle.Render(resp.Error))
		if err != nil {
			return err
		}
		if partial, ok := resp.Data["partialAnswers"].(*chain.AnswerSet); ok && partial.Len() > 0 {
			_, err = fmt.Fprintln(f.out, answerTable(partial))
		}
		return err
	default:
		_, err := fmt.Fprintf(f.out, "%s %s\n", errorIcon, resp.Error)
		return err
	}
}

// Plans writes what a dry run would do.
func (f *Formatter) Plans(plans []dispatch.Plan) error {
	if f.format == FormatJSON {
		return writeJSON(f.out, plans)
	}

	var b strings.Builder
	for i, p := range plans {
		if len(plans) > 1 {
			fmt.Fprintf(&b, "Question %d:\n", i+1)
		}
		fmt.Fprintf(&b, "Would use %s on %s", f.key(p.Mechanism), p.Platform)
		if len(p.Fallback) > 0 {
			fmt.Fprintf(&b, " %s", f.dim("(then "+strings.Join(p.Fallback, ", ")+")"))
		}
		b.WriteString("\n")
		if p.Command != "" {
			fmt.Fprintf(&b, "%s\n", p.Command)
		}
	}
	_, err := io.WriteString(f.out, b.String())
	return err
}

func (f *Formatter) key(s string) string {
	if !f.color {
		return s
	}
	return keyStyle.Render(s)
}

func (f *Formatter) dim(s string) string {
	if !f.color {
		return s
	}
	return dimStyle.Render(s)
}

func answerTable(a *chain.AnswerSet) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorder).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 && row != table.HeaderRow {
				return keyStyle.PaddingRight(1)
			}
			return lipgloss.NewStyle().PaddingRight(1)
		}).
		Headers("KEY", "ANSWER")

	for _, k := range a.Keys() {
		v, _ := a.Get(k)
		if a.Secret(k) {
			v = chain.Mask
		}
		t.Row(k, v)
	}
	return t.Render()
}
