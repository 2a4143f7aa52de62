package mechanism

import (
	"context"

	"github.com/ziggle-dev/clanker-input/internal/escape"
	"github.com/ziggle-dev/clanker-input/internal/prompt"
	"github.com/ziggle-dev/clanker-input/internal/runner"
)

// Zenity presents prompts through GTK dialogs.
type Zenity struct {
	process
}

// NewZenity returns the zenity mechanism.
func NewZenity(r runner.Runner) *Zenity {
	return &Zenity{process{name: NameZenity, binary: "zenity", runner: r}}
}

// Command builds the zenity invocation.
func (z *Zenity) Command(req prompt.Request) runner.Command {
	title := escape.Line(req.TitleOrDefault())
	text := escape.Line(req.Text)

	var args []string
	switch req.Kind {
	case prompt.KindDropdown:
		args = []string{
			"--list", "--radiolist",
			"--title", title,
			"--text", text,
			"--column", "", "--column", "Option",
			"--hide-header", "--print-column=2",
		}
		selected := req.DefaultChoiceIndex()
		for i, choice := range req.Choices {
			mark := "FALSE"
			if i == selected {
				mark = "TRUE"
			}
			args = append(args, mark, escape.Line(choice))
		}
	case prompt.KindPassword:
		args = []string{"--entry", "--hide-text", "--title", title, "--text", text}
	default:
		args = []string{"--entry", "--title", title, "--text", text}
		if req.Default != nil {
			args = append(args, "--entry-text", escape.Line(*req.Default))
		}
	}

	return runner.Command{Name: z.binary, Args: args}
}

// Present shows the dialog. Exit status 1 (Cancel button) and 255 (window
// closed) are cancellation; any other non-zero status is a failure.
func (z *Zenity) Present(ctx context.Context, req prompt.Request) prompt.Outcome {
	return z.invoke(ctx, z.Command(req), func(res runner.Result) prompt.Outcome {
		switch res.ExitCode {
		case 0:
			return prompt.Answer(runner.TrimOutput(res.Stdout))
		case 1, 255:
			return prompt.Cancel()
		default:
			return exitFailure(z.name, res)
		}
	})
}
