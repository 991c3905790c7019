// Package secrets scans agent environment values for unresolved
// ${NAME} placeholders and produces the .env.example template.
package secrets

import (
	"bytes"
	"regexp"
	"sort"

	"github.com/star-xai-protocol/capsbench-leaderboard/internal/scenario"
)

var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Extract scans every env value of the green agent and all participants
// for ${NAME} placeholders and returns the template: one "NAME=" line
// per distinct name, sorted lexicographically. Returns nil when no
// placeholder exists, signalling that no file should be written.
func Extract(s *scenario.Scenario) []byte {
	names := Names(s)
	if len(names) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, name := range names {
		buf.WriteString(name)
		buf.WriteString("=\n")
	}
	return buf.Bytes()
}

// Names returns the sorted distinct placeholder names referenced by the
// scenario's env values. Matching is case-sensitive; only string values
// can carry placeholders.
func Names(s *scenario.Scenario) []string {
	seen := make(map[string]struct{})
	for _, a := range s.Agents() {
		for _, v := range a.Env {
			str, ok := v.(string)
			if !ok {
				continue
			}
			for _, m := range placeholderPattern.FindAllStringSubmatch(str, -1) {
				seen[m[1]] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
