package scenario

// Agent describes one scenario participant: either the green (control)
// agent or a named secondary agent.
//
// Exactly one of Image and AgentbeatsID must be set. The Resolved fields
// are empty at parse time and populated by the resolver.
type Agent struct {
	// Name identifies a participant. The green agent is unnamed; it is
	// identified by its role.
	Name string `toml:"name,omitempty"`

	// Image is an explicit container image reference. Forbidden in the
	// restricted execution environment.
	Image string `toml:"image,omitempty"`

	// AgentbeatsID is an opaque identifier resolved against the
	// agentbeats registry.
	AgentbeatsID string `toml:"agentbeats_id,omitempty"`

	// Env holds environment variables for the agent's service. Values
	// are TOML scalars.
	Env map[string]any `toml:"env,omitempty"`

	// ResolvedImage is the deployable image reference after resolution.
	ResolvedImage string `toml:"-"`

	// ResolvedExternalID is a registry-assigned identifier returned by
	// the lookup service, when it differs from AgentbeatsID. The
	// transcoder prefers it over AgentbeatsID.
	ResolvedExternalID string `toml:"-"`
}

// Scenario is the root model parsed from scenario.toml.
type Scenario struct {
	// GreenAgent is the primary/control participant.
	GreenAgent Agent `toml:"green_agent"`

	// Participants holds the secondary agents in document order.
	// Rendering order follows this order.
	Participants []Agent `toml:"participants"`

	// Config is opaque configuration forwarded verbatim to the
	// downstream harness client.
	Config map[string]any `toml:"config"`
}

// Agents returns the green agent followed by every participant, as
// pointers into the scenario. Mutating the returned agents mutates s.
func (s *Scenario) Agents() []*Agent {
	agents := make([]*Agent, 0, len(s.Participants)+1)
	agents = append(agents, &s.GreenAgent)
	for i := range s.Participants {
		agents = append(agents, &s.Participants[i])
	}
	return agents
}
