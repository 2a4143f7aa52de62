// Package prompt defines the normalized prompt request and the outcome every
// input mechanism produces for it.
package prompt

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DefaultTitle is the dialog title used when the caller supplies none.
const DefaultTitle = "Input Required"

// Kind selects how a prompt collects its answer.
type Kind string

const (
	KindText     Kind = "text"
	KindPassword Kind = "password"
	KindDropdown Kind = "dropdown"
)

// ParseKind maps an external type name onto a Kind. The empty string is text.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindText:
		return KindText, nil
	case KindPassword:
		return KindPassword, nil
	case KindDropdown:
		return KindDropdown, nil
	default:
		return "", fmt.Errorf("%w: unknown input type %q (expected text, password or dropdown)", ErrValidation, s)
	}
}

// Request is one normalized prompt.
type Request struct {
	Text    string
	Default *string // nil means no default
	Title   string  // empty means DefaultTitle
	Kind    Kind
	Choices []string // required and non-empty for KindDropdown
}

// Validate checks the request before any mechanism is invoked.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("%w: prompt text is required", ErrValidation)
	}
	if r.Kind == KindDropdown && len(r.Choices) == 0 {
		return fmt.Errorf("%w: dropdown input requires at least one option", ErrValidation)
	}
	return nil
}

// TitleOrDefault returns the request title, or DefaultTitle when unset.
func (r Request) TitleOrDefault() string {
	if r.Title == "" {
		return DefaultTitle
	}
	return r.Title
}

// DefaultValue returns the default answer, or "" when there is none.
func (r Request) DefaultValue() string {
	if r.Default == nil {
		return ""
	}
	return *r.Default
}

// DefaultChoiceIndex returns the index of the default among the choices.
// An absent or unmatched default selects the first choice.
func (r Request) DefaultChoiceIndex() int {
	if r.Default == nil {
		return 0
	}
	if i := slices.Index(r.Choices, *r.Default); i >= 0 {
		return i
	}
	return 0
}

// DefaultChoice returns the choice preselected in a dropdown.
func (r Request) DefaultChoice() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[r.DefaultChoiceIndex()]
}

// String is a safe description of the request for logs.
func (r Request) String() string {
	return fmt.Sprintf("%s prompt %q", r.Kind, r.Text)
}

var (
	// ErrValidation marks a request rejected before any process is spawned.
	ErrValidation = errors.New("invalid input request")
	// ErrUnavailable marks a mechanism that cannot run on this host.
	ErrUnavailable = errors.New("input mechanism unavailable")
	// ErrMechanism marks a mechanism that ran and failed.
	ErrMechanism = errors.New("input mechanism failed")
)
