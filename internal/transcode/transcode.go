// Package transcode renders the scenario in the format consumed by the
// agentbeats client: green-agent endpoint, one participant block per
// agent, and the opaque config section carried over verbatim.
package transcode

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/star-xai-protocol/capsbench-leaderboard/internal/scenario"
)

// Render projects a resolved scenario into the a2a-scenario.toml
// document. Pure and deterministic: participant blocks follow document
// order, config keys are encoded in sorted order.
func Render(s *scenario.Scenario, cfg scenario.Settings) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "[green_agent]\nendpoint = %q\n", cfg.Endpoint(cfg.GreenService))

	for i := range s.Participants {
		p := &s.Participants[i]
		buf.WriteString("\n[[participants]]\n")
		fmt.Fprintf(&buf, "role = %q\n", p.Name)
		fmt.Fprintf(&buf, "endpoint = %q\n", cfg.Endpoint(p.Name))
		if id := externalID(p); id != "" {
			fmt.Fprintf(&buf, "agentbeats_id = %q\n", id)
		}
	}

	configDoc, err := toml.Marshal(map[string]any{"config": s.Config})
	if err != nil {
		return nil, fmt.Errorf("encoding config section: %w", err)
	}
	buf.WriteString("\n")
	buf.Write(configDoc)

	return buf.Bytes(), nil
}

// externalID picks the identifier to advertise for a participant: the
// registry-assigned id when the lookup reported one, otherwise the
// scenario's own agentbeats_id. Empty for explicit-image participants.
func externalID(p *scenario.Agent) string {
	if p.ResolvedExternalID != "" {
		return p.ResolvedExternalID
	}
	return p.AgentbeatsID
}
