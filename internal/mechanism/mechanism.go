// Package mechanism holds the native input mechanisms. Each adapter turns a
// prompt.Request into exactly one external invocation and maps what comes back
// onto a prompt.Outcome. Adapters never retry; fallback belongs to the
// dispatcher.
package mechanism

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ziggle-dev/clanker-input/internal/prompt"
	"github.com/ziggle-dev/clanker-input/internal/runner"
)

// Mechanism names, as used in configuration and logs.
const (
	NameAppleScript = "applescript"
	NamePowerShell  = "powershell"
	NameZenity      = "zenity"
	NameKdialog     = "kdialog"
	NameTerminal    = "terminal"
	NameForm        = "form"
)

// Mechanism presents a prompt through one native input surface.
type Mechanism interface {
	Name() string
	// Available is a presence probe only. It does not prove the mechanism
	// can actually display anything.
	Available() bool
	Present(ctx context.Context, req prompt.Request) prompt.Outcome
}

// Planner is implemented by process-backed mechanisms that can describe the
// command they would run.
type Planner interface {
	Command(req prompt.Request) runner.Command
}

// process is the shared base of every mechanism that shells out.
type process struct {
	name   string
	binary string
	runner runner.Runner
}

func (p process) Name() string {
	return p.name
}

func (p process) Available() bool {
	_, err := p.runner.LookPath(p.binary)
	return err == nil
}

// invoke runs cmd once and hands a completed result to classify. Start
// failures and context expiry are mapped here so every adapter treats them
// the same way.
func (p process) invoke(ctx context.Context, cmd runner.Command, classify func(runner.Result) prompt.Outcome) prompt.Outcome {
	res, err := p.runner.Run(ctx, cmd)
	if err != nil {
		switch {
		case ctx.Err() != nil, errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			return prompt.Cancel()
		case errors.Is(err, runner.ErrNotFound):
			return prompt.Failf(prompt.ErrUnavailable, "%s not found", p.binary)
		default:
			return prompt.Fail(fmt.Errorf("%w: %s: %v", prompt.ErrMechanism, p.name, err))
		}
	}
	return classify(res)
}

// exitFailure builds the Failed outcome for a non-zero, non-cancel exit,
// carrying the tool's own message when it printed one.
func exitFailure(name string, res runner.Result) prompt.Outcome {
	msg := strings.TrimSpace(res.Stderr)
	if msg == "" {
		msg = fmt.Sprintf("exit status %d", res.ExitCode)
	}
	return prompt.Failf(prompt.ErrMechanism, "%s: %s", name, msg)
}
