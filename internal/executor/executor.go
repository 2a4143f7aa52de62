// Package executor runs one prompt: it validates the request, applies
// defaults and the timeout, and hands it to a presenter.
package executor

import (
	"context"
	"errors"
	"time"

	"github.com/ziggle-dev/clanker-input/internal/logging"
	"github.com/ziggle-dev/clanker-input/internal/prompt"
)

// Presenter shows a prompt and reports the outcome. dispatch.Dispatcher is
// the production implementation.
type Presenter interface {
	Present(ctx context.Context, req prompt.Request) prompt.Outcome
}

// Config holds the resolved execution settings.
type Config struct {
	Title   string        // used when the request has no title; empty means prompt.DefaultTitle
	Timeout time.Duration // zero means wait forever
}

// Executor executes single prompts.
type Executor struct {
	config    Config
	presenter Presenter
	log       *logging.Logger
}

// New creates a new Executor. A nil logger discards.
func New(config Config, presenter Presenter, log *logging.Logger) *Executor {
	if log == nil {
		log = logging.Nop()
	}
	return &Executor{
		config:    config,
		presenter: presenter,
		log:       log,
	}
}

// WithTimeout returns an executor with a different per-prompt timeout.
// A non-positive d returns e unchanged.
func (e *Executor) WithTimeout(d time.Duration) *Executor {
	if d <= 0 {
		return e
	}
	c := *e
	c.config.Timeout = d
	return &c
}

// Execute presents req once. Invalid requests fail before anything is
// spawned. A timeout or cancelled ctx while the prompt is open is reported
// as Cancelled.
func (e *Executor) Execute(ctx context.Context, req prompt.Request) prompt.Outcome {
	if err := req.Validate(); err != nil {
		e.log.Debug("rejected prompt", "error", err)
		return prompt.Fail(err)
	}
	req = e.prepare(req)

	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	out := e.presenter.Present(ctx, req)

	if ctxErr := ctx.Err(); ctxErr != nil && out.Status != prompt.Answered {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			e.log.Info("prompt timed out", "timeout", e.config.Timeout.String())
		}
		return prompt.Cancel()
	}
	e.log.Debug("prompt finished", "status", out.Status.String(), "answer_len", len(out.Value))
	return out
}

func (e *Executor) prepare(req prompt.Request) prompt.Request {
	if req.Title == "" {
		req.Title = e.config.Title
	}
	if req.Title == "" {
		req.Title = prompt.DefaultTitle
	}
	return req
}
