package request

import "encoding/json"

// Outcome of a whole request, used for exit codes and metrics.
const (
	StatusAnswered  = "answered"
	StatusCancelled = "cancelled"
	StatusFailed    = "failed"
)

// Message prefixes callers can branch on.
const (
	CancelledPrefix = "Input cancelled"
	FailedPrefix    = "Input failed"
)

// Response is the result returned to callers.
type Response struct {
	Success bool           `json:"success"`
	Output  string         `json:"output,omitempty"`
	Error   string         `json:"error,omitempty"`
	Data    map[string]any `json:"data,omitempty"`

	Status string `json:"-"`
}

// JSON encodes the response, indented.
func (r Response) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Message is what a person should read: the output on success, the error
// otherwise.
func (r Response) Message() string {
	if r.Success {
		return r.Output
	}
	return r.Error
}
