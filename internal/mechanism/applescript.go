package mechanism

import (
	"context"
	"fmt"
	"strings"

	"github.com/ziggle-dev/clanker-input/internal/escape"
	"github.com/ziggle-dev/clanker-input/internal/prompt"
	"github.com/ziggle-dev/clanker-input/internal/runner"
)

// appleScriptCancel is the error number AppleScript raises when the user
// dismisses a dialog.
const appleScriptCancel = "-128"

// AppleScript presents prompts through System Events dialogs via osascript.
type AppleScript struct {
	process
}

// NewAppleScript returns the macOS mechanism.
func NewAppleScript(r runner.Runner) *AppleScript {
	return &AppleScript{process{name: NameAppleScript, binary: "osascript", runner: r}}
}

// Command builds the osascript invocation, one -e flag per script line.
func (a *AppleScript) Command(req prompt.Request) runner.Command {
	lines := a.script(req)
	args := make([]string, 0, len(lines)*2)
	for _, line := range lines {
		args = append(args, "-e", line)
	}
	return runner.Command{Name: a.binary, Args: args}
}

func (a *AppleScript) script(req prompt.Request) []string {
	text := escape.AppleScript(req.Text)
	title := escape.AppleScript(req.TitleOrDefault())

	var body []string
	switch req.Kind {
	case prompt.KindDropdown:
		body = []string{
			fmt.Sprintf(`set r to choose from list %s with prompt "%s" with title "%s" default items {"%s"}`,
				escape.AppleScriptList(req.Choices), text, title, escape.AppleScript(req.DefaultChoice())),
			"if r is false then error number " + appleScriptCancel,
			"return item 1 of r",
		}
	case prompt.KindPassword:
		// Hidden answers cannot carry a pre-filled default.
		body = []string{
			fmt.Sprintf(`set r to display dialog "%s" default answer "" with hidden answer with title "%s" buttons {"Cancel", "OK"} default button "OK"`,
				text, title),
			"return text returned of r",
		}
	default:
		body = []string{
			fmt.Sprintf(`set r to display dialog "%s" default answer "%s" with title "%s" buttons {"Cancel", "OK"} default button "OK"`,
				text, escape.AppleScript(req.DefaultValue()), title),
			"return text returned of r",
		}
	}

	script := []string{`tell application "System Events"`, "activate"}
	script = append(script, body...)
	return append(script, "end tell")
}

// Present shows the dialog and waits for it to close.
func (a *AppleScript) Present(ctx context.Context, req prompt.Request) prompt.Outcome {
	return a.invoke(ctx, a.Command(req), func(res runner.Result) prompt.Outcome {
		if res.ExitCode == 0 {
			return prompt.Answer(runner.TrimOutput(res.Stdout))
		}
		if strings.Contains(res.Stderr, appleScriptCancel) || strings.Contains(res.Stderr, "User canceled") {
			return prompt.Cancel()
		}
		return exitFailure(a.name, res)
	})
}
