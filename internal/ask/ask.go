// Package ask is the entry point shared by the CLI and the MCP server: it
// takes an external request, runs it as a single prompt or a chain, and
// builds the response.
package ask

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ziggle-dev/clanker-input/internal/chain"
	"github.com/ziggle-dev/clanker-input/internal/dispatch"
	"github.com/ziggle-dev/clanker-input/internal/executor"
	"github.com/ziggle-dev/clanker-input/internal/logging"
	"github.com/ziggle-dev/clanker-input/internal/metrics"
	"github.com/ziggle-dev/clanker-input/internal/prompt"
	"github.com/ziggle-dev/clanker-input/internal/request"
)

// Planner describes what would be shown without showing it.
type Planner interface {
	Plan(req prompt.Request) (dispatch.Plan, error)
}

// Service answers requests.
type Service struct {
	executor *executor.Executor
	planner  Planner
	log      *logging.Logger
	metrics  *metrics.Metrics
}

// New returns a Service. planner may be nil when dry runs are not needed.
func New(exec *executor.Executor, planner Planner, log *logging.Logger, m *metrics.Metrics) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{executor: exec, planner: planner, log: log, metrics: m}
}

// Ask runs req and always returns a response; failures are reported in it.
func (s *Service) Ask(ctx context.Context, req request.Request) request.Response {
	log := s.log.With("invocation_id", uuid.NewString())

	n, err := req.Normalize()
	if err != nil {
		log.Info("rejected input request", "error", err)
		return Failure(err, nil)
	}
	for _, w := range n.Warnings {
		log.Warn(w)
	}

	exec := s.executor.WithTimeout(n.Timeout)
	if !n.Chain {
		log.Debug("asking single question", "kind", n.Prompts[0].Kind)
		out := exec.Execute(ctx, n.Prompts[0])
		log.Info("input request finished", "status", out.Status.String(), "answer_len", len(out.Value))
		return Single(n.Prompts[0], out)
	}

	log.Debug("asking question chain", "questions", len(n.Prompts))
	res, err := chain.New(exec, log, s.metrics).Run(ctx, n.Prompts)
	if err != nil {
		log.Info("question chain failed", "error", err)
		return ChainFailure(err)
	}
	log.Info("question chain finished", "status", res.Status.String(), "answered", res.Answers.Len())
	return Chain(res)
}

// Plan reports the mechanism each question would use.
func (s *Service) Plan(req request.Request) ([]dispatch.Plan, error) {
	if s.planner == nil {
		return nil, errors.New("dry run is not available")
	}
	n, err := req.Normalize()
	if err != nil {
		return nil, err
	}
	plans := make([]dispatch.Plan, 0, len(n.Prompts))
	for i, p := range n.Prompts {
		if p.Title == "" && n.Chain {
			p.Title = chain.ItemTitle(i, len(n.Prompts))
		}
		if p.Title == "" {
			p.Title = prompt.DefaultTitle
		}
		plan, err := s.planner.Plan(p)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// Single builds the response for one prompt.
func Single(req prompt.Request, out prompt.Outcome) request.Response {
	switch out.Status {
	case prompt.Answered:
		shown := out.Value
		if req.Kind == prompt.KindPassword {
			shown = chain.Mask
		}
		return request.Response{
			Success: true,
			Output:  shown,
			Data:    map[string]any{"input": out.Value},
			Status:  request.StatusAnswered,
		}
	case prompt.Cancelled:
		return request.Response{
			Error:  request.CancelledPrefix + " by user",
			Status: request.StatusCancelled,
		}
	default:
		return Failure(out.Err, nil)
	}
}

// Chain builds the response for a chain that finished or was cancelled.
func Chain(res chain.Result) request.Response {
	if res.Status == chain.PartiallyCancelled {
		return request.Response{
			Error: fmt.Sprintf("%s at question %d of %d", request.CancelledPrefix, res.StoppedAt+1, res.Total),
			Data: map[string]any{
				"cancelled":         true,
				"stoppedAt":         res.StoppedAt,
				"answeredQuestions": res.Answers.Len(),
				"partialAnswers":    res.Answers,
			},
			Status: request.StatusCancelled,
		}
	}
	return request.Response{
		Success: true,
		Output:  res.Answers.Format(),
		Data: map[string]any{
			"answers":       res.Answers,
			"questionCount": res.Total,
		},
		Status: request.StatusAnswered,
	}
}

// ChainFailure builds the response for a chain that stopped on an error,
// keeping what was answered before it.
func ChainFailure(err error) request.Response {
	var chainErr *chain.Error
	if !errors.As(err, &chainErr) || chainErr.Partial == nil {
		return Failure(err, nil)
	}
	return Failure(err, map[string]any{
		"failedAt":          chainErr.Index,
		"answeredQuestions": chainErr.Partial.Len(),
		"partialAnswers":    chainErr.Partial,
	})
}

// Failure builds a failed response.
func Failure(err error, data map[string]any) request.Response {
	if err == nil {
		err = prompt.ErrMechanism
	}
	return request.Response{
		Error:  fmt.Sprintf("%s: %v", request.FailedPrefix, err),
		Data:   data,
		Status: request.StatusFailed,
	}
}
