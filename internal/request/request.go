// Package request decodes the external input request shared by the MCP tool
// and the CLI, and normalizes it into prompts.
package request

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/ziggle-dev/clanker-input/internal/prompt"
	"gopkg.in/yaml.v3"
)

// Question is one prompt as callers describe it.
type Question struct {
	Prompt       string   `mapstructure:"prompt" json:"prompt,omitempty" yaml:"prompt" jsonschema:"description=The question shown to the user"`
	DefaultValue *string  `mapstructure:"default_value" json:"default_value,omitempty" yaml:"default_value" jsonschema:"description=Pre-filled answer; ignored for passwords"`
	Title        string   `mapstructure:"title" json:"title,omitempty" yaml:"title" jsonschema:"description=Dialog title (default Input Required)"`
	Password     bool     `mapstructure:"password" json:"password,omitempty" yaml:"password" jsonschema:"description=Mask the input; same as type password"`
	Type         string   `mapstructure:"type" json:"type,omitempty" yaml:"type" jsonschema:"enum=text,enum=password,enum=dropdown,description=Kind of input (default text)"`
	Options      []string `mapstructure:"options" json:"options,omitempty" yaml:"options" jsonschema:"description=Choices for a dropdown"`
}

// Request is a single prompt or a chain of questions.
type Request struct {
	Question       `mapstructure:",squash" yaml:",inline"`
	Questions      []Question `mapstructure:"questions" json:"questions,omitempty" yaml:"questions" jsonschema:"description=Ask these in order and return the answers keyed by question"`
	TimeoutSeconds float64    `mapstructure:"timeout_seconds" json:"timeout_seconds,omitempty" yaml:"timeout_seconds" jsonschema:"minimum=0,description=Treat no answer within this many seconds as cancellation"`
}

// Normalized is a request ready for execution.
type Normalized struct {
	Prompts []prompt.Request
	// Chain is true when the request used questions, even a single one.
	Chain   bool
	Timeout time.Duration
	// Warnings are non-fatal problems worth logging.
	Warnings []string
}

// Decode reads a request from loosely typed arguments, as delivered by MCP.
func Decode(args map[string]any) (Request, error) {
	var req Request
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &req,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Request{}, err
	}
	if err := dec.Decode(args); err != nil {
		return Request{}, fmt.Errorf("%w: %v", prompt.ErrValidation, err)
	}
	return req, nil
}

// DecodeYAML reads a request file. A top-level list is taken as questions.
func DecodeYAML(data []byte) (Request, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Request{}, fmt.Errorf("%w: %v", prompt.ErrValidation, err)
	}
	switch v := doc.(type) {
	case map[string]any:
		return Decode(v)
	case []any:
		return Decode(map[string]any{"questions": v})
	case nil:
		return Request{}, fmt.Errorf("%w: request file is empty", prompt.ErrValidation)
	default:
		return Request{}, fmt.Errorf("%w: request file must be a mapping or a list of questions", prompt.ErrValidation)
	}
}

// Normalize turns the request into prompts. When both prompt and questions
// are given, questions wins and a warning is recorded.
func (r Request) Normalize() (Normalized, error) {
	if r.TimeoutSeconds < 0 {
		return Normalized{}, fmt.Errorf("%w: timeout_seconds must not be negative", prompt.ErrValidation)
	}
	n := Normalized{Timeout: time.Duration(r.TimeoutSeconds * float64(time.Second))}

	switch {
	case len(r.Questions) > 0:
		if strings.TrimSpace(r.Prompt) != "" {
			n.Warnings = append(n.Warnings, "both prompt and questions given; asking questions and ignoring prompt")
		}
		n.Chain = true
		for i, q := range r.Questions {
			p, err := q.toPrompt()
			if err != nil {
				return Normalized{}, fmt.Errorf("question %d: %w", i+1, err)
			}
			n.Prompts = append(n.Prompts, p)
		}
	case strings.TrimSpace(r.Prompt) != "":
		p, err := r.Question.toPrompt()
		if err != nil {
			return Normalized{}, err
		}
		n.Prompts = []prompt.Request{p}
	default:
		return Normalized{}, fmt.Errorf("%w: either prompt or questions is required", prompt.ErrValidation)
	}
	return n, nil
}

// toPrompt maps the external fields. password=true turns a text prompt into
// a password prompt; an explicit dropdown stays a dropdown.
func (q Question) toPrompt() (prompt.Request, error) {
	kind, err := prompt.ParseKind(q.Type)
	if err != nil {
		return prompt.Request{}, err
	}
	if q.Password && kind == prompt.KindText {
		kind = prompt.KindPassword
	}

	req := prompt.Request{
		Text:    q.Prompt,
		Default: q.DefaultValue,
		Title:   q.Title,
		Kind:    kind,
		Choices: q.Options,
	}
	if err := req.Validate(); err != nil {
		return prompt.Request{}, err
	}
	return req, nil
}

// IsValidation reports whether err rejects the request itself.
func IsValidation(err error) bool {
	return errors.Is(err, prompt.ErrValidation)
}
