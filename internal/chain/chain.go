// Package chain runs an ordered list of questions one after another and
// collects the answers under keys derived from the question wording.
package chain

import (
	"context"
	"fmt"

	"github.com/ziggle-dev/clanker-input/internal/keyderive"
	"github.com/ziggle-dev/clanker-input/internal/logging"
	"github.com/ziggle-dev/clanker-input/internal/metrics"
	"github.com/ziggle-dev/clanker-input/internal/prompt"
)

// Status is how a chain ended without error.
type Status int

const (
	Complete Status = iota
	PartiallyCancelled
)

func (s Status) String() string {
	if s == PartiallyCancelled {
		return "partially_cancelled"
	}
	return "complete"
}

// Result is a chain that either finished or was cancelled by the user.
// StoppedAt is the 0-based index of the cancelled question and is only
// meaningful when PartiallyCancelled.
type Result struct {
	Status    Status
	Answers   *AnswerSet
	StoppedAt int
	Total     int
}

// Error is a chain that stopped on a failure. Partial holds the answers
// collected before question Index failed; it is empty for validation errors.
type Error struct {
	Index   int
	Total   int
	Err     error
	Partial *AnswerSet
}

func (e *Error) Error() string {
	if e.Total == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("question %d of %d: %v", e.Index+1, e.Total, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Executor presents one prompt.
type Executor interface {
	Execute(ctx context.Context, req prompt.Request) prompt.Outcome
}

// Orchestrator runs question chains.
type Orchestrator struct {
	executor Executor
	log      *logging.Logger
	metrics  *metrics.Metrics
}

// New returns an orchestrator. log and m may be nil.
func New(executor Executor, log *logging.Logger, m *metrics.Metrics) *Orchestrator {
	if log == nil {
		log = logging.Nop()
	}
	return &Orchestrator{executor: executor, log: log, metrics: m}
}

// ItemTitle is the title given to question i of n when it has none.
func ItemTitle(i, n int) string {
	return fmt.Sprintf("Question %d of %d", i+1, n)
}

// Run validates every question, then asks them in order. Nothing is shown
// when any question is invalid. Requests decoded by the request package are
// already valid; the check here guards callers that build prompts directly.
func (o *Orchestrator) Run(ctx context.Context, questions []prompt.Request) (Result, error) {
	total := len(questions)
	if total == 0 {
		return Result{}, &Error{Index: 0, Total: 0, Err: fmt.Errorf("%w: at least one question is required", prompt.ErrValidation), Partial: NewAnswerSet()}
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			o.metrics.ObserveChain("invalid")
			return Result{}, &Error{Index: i, Total: total, Err: err, Partial: NewAnswerSet()}
		}
	}

	answers := NewAnswerSet()
	for i, q := range questions {
		if q.Title == "" {
			q.Title = ItemTitle(i, total)
		}

		out := o.executor.Execute(ctx, q)
		switch out.Status {
		case prompt.Answered:
			key := keyderive.Derive(q.Text, i)
			if answers.Set(key, out.Value, q.Kind == prompt.KindPassword) {
				o.log.Debug("answer key reused, keeping the later answer", "key", key, "index", i)
			}
		case prompt.Cancelled:
			o.log.Info("chain cancelled", "stopped_at", i, "answered", answers.Len())
			o.metrics.ObserveChain("cancelled")
			return Result{Status: PartiallyCancelled, Answers: answers, StoppedAt: i, Total: total}, nil
		default:
			o.metrics.ObserveChain("failed")
			return Result{}, &Error{Index: i, Total: total, Err: out.Err, Partial: answers}
		}
	}

	o.metrics.ObserveChain("complete")
	return Result{Status: Complete, Answers: answers, StoppedAt: total, Total: total}, nil
}
