// Package generate runs the full scenario pipeline: load, resolve,
// validate, then render and write the three output documents.
package generate

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/star-xai-protocol/capsbench-leaderboard/internal/compose"
	"github.com/star-xai-protocol/capsbench-leaderboard/internal/registry"
	"github.com/star-xai-protocol/capsbench-leaderboard/internal/resolve"
	"github.com/star-xai-protocol/capsbench-leaderboard/internal/scenario"
	"github.com/star-xai-protocol/capsbench-leaderboard/internal/secrets"
	"github.com/star-xai-protocol/capsbench-leaderboard/internal/transcode"
)

// Result reports what a successful run produced.
type Result struct {
	// Files lists the paths written, in write order.
	Files []string `json:"files"`

	// SecretNames lists the unresolved placeholder names found in env
	// values, empty when no secrets template was written.
	SecretNames []string `json:"secret_names,omitempty"`
}

// Run executes the pipeline for the scenario at path. Every document is
// rendered in memory before the first file is written, so a failing run
// leaves no partial output behind. Per-agent status lines go to status;
// pass io.Discard to suppress them.
func Run(ctx context.Context, path string, cfg scenario.Settings, lookup registry.Lookup, restricted bool, status io.Writer) (*Result, error) {
	s, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}

	r := &resolve.Resolver{Lookup: lookup, Restricted: restricted}
	if err := r.ResolveScenario(ctx, s); err != nil {
		return nil, err
	}
	reportResolved(status, s)

	composeDoc, err := compose.Render(s, cfg)
	if err != nil {
		return nil, err
	}
	scenarioDoc, err := transcode.Render(s, cfg)
	if err != nil {
		return nil, err
	}
	envDoc := secrets.Extract(s)

	result := &Result{SecretNames: secrets.Names(s)}

	writes := []struct {
		path string
		data []byte
	}{
		{cfg.ComposePath, composeDoc},
		{cfg.ScenarioOutPath, scenarioDoc},
		{cfg.EnvTemplatePath, envDoc},
	}
	for _, w := range writes {
		if w.data == nil {
			continue
		}
		if err := os.WriteFile(w.path, w.data, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", w.path, err)
		}
		result.Files = append(result.Files, w.path)
	}

	return result, nil
}

// reportResolved prints one line per agent, distinguishing images that
// were supplied locally from images fetched via the registry.
func reportResolved(w io.Writer, s *scenario.Scenario) {
	verb := func(a *scenario.Agent) string {
		if a.AgentbeatsID != "" {
			return "Resolved"
		}
		return "Using"
	}
	fmt.Fprintf(w, "%s green_agent image: %s\n", verb(&s.GreenAgent), s.GreenAgent.ResolvedImage)
	for i := range s.Participants {
		p := &s.Participants[i]
		fmt.Fprintf(w, "%s participant '%s' image: %s\n", verb(p), p.Name, p.ResolvedImage)
	}
}
