package registry

import "context"

// Stub is a deterministic in-memory Lookup for tests. It never touches
// the network.
type Stub struct {
	// Agents maps agentbeats identifiers to their info.
	Agents map[string]AgentInfo

	// Calls records the identifiers looked up, in order.
	Calls []string
}

// AgentInfo implements Lookup. An identifier absent from Agents yields
// the same ResolutionError a 404 from the real service would.
func (s *Stub) AgentInfo(_ context.Context, agentbeatsID string) (*AgentInfo, error) {
	s.Calls = append(s.Calls, agentbeatsID)
	info, ok := s.Agents[agentbeatsID]
	if !ok {
		return nil, &ResolutionError{
			Code:         ErrCodeStatus,
			AgentbeatsID: agentbeatsID,
			Message:      "lookup returned 404 Not Found",
		}
	}
	return &info, nil
}
