package scenario

import (
	"fmt"
	"sort"
	"strings"
)

// CheckImageSource enforces the image-source rule for one agent:
// exactly one of Image and AgentbeatsID must be set, and explicit
// images are forbidden when restricted is true (registry-mediated
// provenance mode). displayName attributes the error to the entity.
func CheckImageSource(a *Agent, displayName string, restricted bool) error {
	hasImage := a.Image != ""
	hasID := a.AgentbeatsID != ""

	switch {
	case hasImage && hasID:
		return &ConfigError{
			Code:    ErrCodeAmbiguousImage,
			Subject: displayName,
			Message: "has both 'image' and 'agentbeats_id' - use one or the other",
		}
	case hasImage && restricted:
		return &ConfigError{
			Code:    ErrCodeImageForbidden,
			Subject: displayName,
			Message: "requires 'agentbeats_id' in this environment (use 'image' for local testing only)",
		}
	case !hasImage && !hasID:
		return &ConfigError{
			Code:    ErrCodeMissingImage,
			Subject: displayName,
			Message: "must have either 'image' or 'agentbeats_id' field",
		}
	}
	return nil
}

// ValidateNames checks participant name uniqueness. When duplicates
// exist it returns a single *ConfigError carrying the complete sorted
// set of duplicated names, so one run surfaces every collision.
func ValidateNames(participants []Agent) error {
	counts := make(map[string]int, len(participants))
	for _, p := range participants {
		counts[p.Name]++
	}

	var dups []string
	for name, n := range counts {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	if len(dups) == 0 {
		return nil
	}
	sort.Strings(dups)

	return &ConfigError{
		Code:    ErrCodeDuplicateNames,
		Message: fmt.Sprintf("duplicate participant names found: %s (each participant must have a unique name)", strings.Join(dups, ", ")),
		Names:   dups,
	}
}

// DisplayName names an agent for diagnostics: "green_agent" for the
// control agent, "participant '<name>'" otherwise.
func DisplayName(a *Agent, green bool) string {
	if green {
		return "green_agent"
	}
	return fmt.Sprintf("participant '%s'", a.Name)
}

// StaticCheck runs every validation that needs no network access:
// image-source exclusivity for the green agent and all participants,
// and participant name uniqueness. All violations are collected.
func StaticCheck(s *Scenario, restricted bool) []error {
	var errs []error

	if err := CheckImageSource(&s.GreenAgent, DisplayName(&s.GreenAgent, true), restricted); err != nil {
		errs = append(errs, err)
	}
	for i := range s.Participants {
		p := &s.Participants[i]
		if err := CheckImageSource(p, DisplayName(p, false), restricted); err != nil {
			errs = append(errs, err)
		}
	}
	if err := ValidateNames(s.Participants); err != nil {
		errs = append(errs, err)
	}
	return errs
}
