package mechanism

import (
	"context"

	"github.com/ziggle-dev/clanker-input/internal/escape"
	"github.com/ziggle-dev/clanker-input/internal/prompt"
	"github.com/ziggle-dev/clanker-input/internal/runner"
)

// Kdialog presents prompts through KDE dialogs.
type Kdialog struct {
	process
}

// NewKdialog returns the kdialog mechanism.
func NewKdialog(r runner.Runner) *Kdialog {
	return &Kdialog{process{name: NameKdialog, binary: "kdialog", runner: r}}
}

// Command builds the kdialog invocation.
func (k *Kdialog) Command(req prompt.Request) runner.Command {
	args := []string{"--title", escape.Line(req.TitleOrDefault())}
	text := escape.Line(req.Text)

	switch req.Kind {
	case prompt.KindDropdown:
		args = append(args, "--combobox", text)
		for _, choice := range req.Choices {
			args = append(args, escape.Line(choice))
		}
		args = append(args, "--default", escape.Line(req.DefaultChoice()))
	case prompt.KindPassword:
		args = append(args, "--password", text)
	default:
		args = append(args, "--inputbox", text)
		if req.Default != nil {
			args = append(args, escape.Line(*req.Default))
		}
	}

	return runner.Command{Name: k.binary, Args: args}
}

// Present shows the dialog. Exit status 1 is cancellation.
func (k *Kdialog) Present(ctx context.Context, req prompt.Request) prompt.Outcome {
	return k.invoke(ctx, k.Command(req), func(res runner.Result) prompt.Outcome {
		switch res.ExitCode {
		case 0:
			return prompt.Answer(runner.TrimOutput(res.Stdout))
		case 1:
			return prompt.Cancel()
		default:
			return exitFailure(k.name, res)
		}
	})
}
