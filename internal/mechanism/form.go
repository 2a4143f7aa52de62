package mechanism

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/ziggle-dev/clanker-input/internal/escape"
	"github.com/ziggle-dev/clanker-input/internal/prompt"
)

// Form is the full-screen terminal rendition of the terminal mechanism,
// built on huh forms.
type Form struct {
	open ConsoleOpener
	run  func(ctx context.Context, form *huh.Form) error
}

// NewForm returns the form mechanism. A nil opener uses OpenConsole.
func NewForm(open ConsoleOpener) *Form {
	if open == nil {
		open = OpenConsole
	}
	return &Form{
		open: open,
		run: func(ctx context.Context, form *huh.Form) error {
			return form.RunWithContext(ctx)
		},
	}
}

func (f *Form) Name() string {
	return NameForm
}

// Available is always true, like the line terminal it replaces.
func (f *Form) Available() bool {
	return true
}

// Present runs a one-field form on the console.
func (f *Form) Present(ctx context.Context, req prompt.Request) prompt.Outcome {
	console, err := f.open()
	if err != nil {
		if errors.Is(err, prompt.ErrUnavailable) {
			return prompt.Fail(err)
		}
		return prompt.Failf(prompt.ErrUnavailable, "form: %v", err)
	}
	defer func() { _ = console.Close() }()

	answer := req.DefaultValue()
	form := f.build(req, &answer).
		WithInput(console.In).
		WithOutput(console.Out).
		WithShowHelp(true)

	if err := f.run(ctx, form); err != nil {
		switch {
		case errors.Is(err, huh.ErrUserAborted), errors.Is(err, huh.ErrTimeout), ctx.Err() != nil:
			return prompt.Cancel()
		default:
			return prompt.Failf(prompt.ErrMechanism, "form: %v", err)
		}
	}
	return prompt.Answer(answer)
}

func (f *Form) build(req prompt.Request, answer *string) *huh.Form {
	title := escape.Line(req.TitleOrDefault())
	text := escape.Line(req.Text)

	var field huh.Field
	switch req.Kind {
	case prompt.KindDropdown:
		options := make([]huh.Option[string], 0, len(req.Choices))
		for _, choice := range req.Choices {
			options = append(options, huh.NewOption(escape.Line(choice), choice))
		}
		*answer = req.DefaultChoice()
		field = huh.NewSelect[string]().
			Title(title).
			Description(text).
			Options(options...).
			Value(answer)
	case prompt.KindPassword:
		*answer = ""
		field = huh.NewInput().
			Title(title).
			Description(text).
			EchoMode(huh.EchoModePassword).
			Value(answer)
	default:
		field = huh.NewInput().
			Title(title).
			Description(text).
			Value(answer)
	}

	return huh.NewForm(huh.NewGroup(field))
}
