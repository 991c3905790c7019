package registry

import "fmt"

// Resolution error codes (E300-E399).
const (
	ErrCodeTransport    = "E301" // request could not be sent or timed out
	ErrCodeStatus       = "E302" // non-success HTTP status
	ErrCodeBody         = "E303" // response body is not valid JSON
	ErrCodeMissingField = "E304" // response lacks the image field
)

// ResolutionError reports a failed lookup against the agentbeats
// registry. It is fatal to the run; lookups are never retried.
type ResolutionError struct {
	Code         string
	AgentbeatsID string
	Message      string
	Err          error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("[%s] failed to fetch agent %s: %s", e.Code, e.AgentbeatsID, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error, if any.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}
