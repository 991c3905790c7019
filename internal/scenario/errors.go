package scenario

import (
	"fmt"
	"strings"
)

// Scenario error codes. Parse errors are E1xx, configuration errors E2xx.
const (
	// Parse errors (E100-E199)
	ErrCodeUnreadable = "E100" // scenario file cannot be read
	ErrCodeMalformed  = "E101" // document is not well-formed TOML
	ErrCodeSchema     = "E102" // document violates the scenario schema

	// Config errors (E200-E299)
	ErrCodeAmbiguousImage = "E201" // both image and agentbeats_id set
	ErrCodeMissingImage   = "E202" // neither image nor agentbeats_id set
	ErrCodeImageForbidden = "E203" // explicit image in restricted environment
	ErrCodeDuplicateNames = "E204" // participant names not unique
)

// ParseError reports a scenario document that could not be read or does
// not conform to the expected structure. Details holds one message per
// schema violation when the document parsed but failed validation.
type ParseError struct {
	Code    string
	Path    string
	Message string
	Details []string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("[%s] %s: %s", e.Code, e.Path, e.Message)
	if len(e.Details) > 0 {
		msg += ": " + strings.Join(e.Details, "; ")
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConfigError reports a structural or business-rule violation in a
// parsed scenario. Subject names the offending entity ("green_agent" or
// "participant '<name>'") when the violation is entity-specific.
type ConfigError struct {
	Code    string
	Subject string
	Message string

	// Names holds the complete set of duplicated participant names for
	// ErrCodeDuplicateNames. Sorted, each name listed once.
	Names []string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Subject, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}
