// Package dispatch picks the input mechanism for a prompt. Each platform has
// an ordered list of mechanisms; the dispatcher walks it until one of them
// produces a definitive outcome.
package dispatch

import (
	"context"
	"errors"

	"github.com/ziggle-dev/clanker-input/internal/logging"
	"github.com/ziggle-dev/clanker-input/internal/mechanism"
	"github.com/ziggle-dev/clanker-input/internal/metrics"
	"github.com/ziggle-dev/clanker-input/internal/prompt"
)

// Dispatcher presents prompts through the first mechanism that works.
type Dispatcher struct {
	platform   string
	mechanisms []mechanism.Mechanism
	log        *logging.Logger
	metrics    *metrics.Metrics
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger. The default discards.
func WithLogger(l *logging.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// WithMetrics enables counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// New returns a dispatcher trying mechanisms in order.
func New(platform string, mechanisms []mechanism.Mechanism, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		platform:   Family(platform),
		mechanisms: mechanisms,
		log:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Platform returns the platform family the dispatcher was built for.
func (d *Dispatcher) Platform() string {
	return d.platform
}

// Present walks the strategy list. Mechanisms whose binary is missing are
// skipped on every platform. A mechanism that ran and failed hands over to
// the next one only on platforms with fallback, and never from the last
// entry. Answered and Cancelled outcomes always end the walk.
func (d *Dispatcher) Present(ctx context.Context, req prompt.Request) prompt.Outcome {
	fallback := Fallback(d.platform)
	last := len(d.mechanisms) - 1
	var lastFailure prompt.Outcome

	for i, m := range d.mechanisms {
		if err := ctx.Err(); err != nil {
			return prompt.Cancel()
		}
		if !m.Available() {
			d.log.Debug("input mechanism not installed", "mechanism", m.Name())
			d.metrics.ObserveFallback(m.Name(), "unavailable")
			lastFailure = prompt.Failf(prompt.ErrUnavailable, "%s is not installed", m.Name())
			continue
		}

		d.log.Debug("presenting prompt", "mechanism", m.Name(), "kind", req.Kind)
		out := m.Present(ctx, req)
		d.metrics.ObservePresent(m.Name(), out.Status.String())

		if out.Status != prompt.Failed || i == last {
			return out
		}
		if out.Unavailable() || fallback {
			d.log.Warn("input mechanism failed, trying next", "mechanism", m.Name(), "error", out.Err)
			d.metrics.ObserveFallback(m.Name(), reason(out))
			lastFailure = out
			continue
		}
		return out
	}

	if lastFailure.Status == prompt.Failed {
		return lastFailure
	}
	return prompt.Failf(prompt.ErrUnavailable, "no input mechanism available on %s", d.platform)
}

// Plan describes what Present would try first without spawning anything.
type Plan struct {
	Platform  string `json:"platform"`
	Mechanism string `json:"mechanism"`
	// Command is the process invocation, empty for console mechanisms.
	Command  string   `json:"command,omitempty"`
	Fallback []string `json:"fallback,omitempty"`
}

// ErrNoMechanism is returned by Plan when nothing in the table is installed.
var ErrNoMechanism = errors.New("no input mechanism available")

// Plan reports the first available mechanism for req and the ones that
// would follow it.
func (d *Dispatcher) Plan(req prompt.Request) (Plan, error) {
	for i, m := range d.mechanisms {
		if !m.Available() {
			continue
		}
		p := Plan{Platform: d.platform, Mechanism: m.Name()}
		if planner, ok := m.(mechanism.Planner); ok {
			p.Command = planner.Command(req).String()
		}
		for _, next := range d.mechanisms[i+1:] {
			p.Fallback = append(p.Fallback, next.Name())
		}
		return p, nil
	}
	return Plan{Platform: d.platform}, ErrNoMechanism
}

func reason(out prompt.Outcome) string {
	if out.Unavailable() {
		return "unavailable"
	}
	return "failed"
}
