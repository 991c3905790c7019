package scenario

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Load reads and parses a scenario.toml document.
//
// The document is decoded, checked against the scenario schema, and
// returned as a Scenario. Absent participants and config sections
// default to empty collections. A document that cannot be read, is not
// well-formed TOML, or violates the schema yields a *ParseError.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{
			Code:    ErrCodeUnreadable,
			Path:    path,
			Message: "reading scenario file",
			Err:     err,
		}
	}
	return Parse(path, data)
}

// Parse decodes a scenario document from memory. The path is used only
// for error attribution.
func Parse(path string, data []byte) (*Scenario, error) {
	// Decode twice: the raw form feeds schema validation, the typed
	// form becomes the model. Both see the same bytes.
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{
			Code:    ErrCodeMalformed,
			Path:    path,
			Message: "scenario file is not valid TOML",
			Err:     err,
		}
	}

	if details := CheckSchema(raw); len(details) > 0 {
		return nil, &ParseError{
			Code:    ErrCodeSchema,
			Path:    path,
			Message: "scenario file violates schema",
			Details: details,
		}
	}

	var s Scenario
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, &ParseError{
			Code:    ErrCodeMalformed,
			Path:    path,
			Message: "decoding scenario file",
			Err:     err,
		}
	}

	if s.Participants == nil {
		s.Participants = []Agent{}
	}
	if s.Config == nil {
		s.Config = map[string]any{}
	}
	return &s, nil
}
