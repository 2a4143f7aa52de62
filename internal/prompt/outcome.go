package prompt

import (
	"errors"
	"fmt"
)

// Status discriminates the three possible results of presenting a prompt.
type Status int

const (
	Answered Status = iota
	Cancelled
	Failed
)

func (s Status) String() string {
	switch s {
	case Answered:
		return "answered"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is the single result of presenting one prompt. Value is set only
// when Answered, Err only when Failed.
type Outcome struct {
	Status Status
	Value  string
	Err    error
}

// Answer returns an Answered outcome.
func Answer(value string) Outcome {
	return Outcome{Status: Answered, Value: value}
}

// Cancel returns a Cancelled outcome.
func Cancel() Outcome {
	return Outcome{Status: Cancelled}
}

// Fail returns a Failed outcome. A nil err is replaced by ErrMechanism.
func Fail(err error) Outcome {
	if err == nil {
		err = ErrMechanism
	}
	return Outcome{Status: Failed, Err: err}
}

// Failf returns a Failed outcome wrapping base with a formatted reason.
func Failf(base error, format string, args ...any) Outcome {
	return Fail(fmt.Errorf("%w: %s", base, fmt.Sprintf(format, args...)))
}

// Unavailable reports whether the outcome failed because the mechanism
// could not run at all.
func (o Outcome) Unavailable() bool {
	return o.Status == Failed && errors.Is(o.Err, ErrUnavailable)
}

// Invalid reports whether the outcome failed validation.
func (o Outcome) Invalid() bool {
	return o.Status == Failed && errors.Is(o.Err, ErrValidation)
}
