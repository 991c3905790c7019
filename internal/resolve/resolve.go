// Package resolve turns each agent's declared image source into a
// concrete deployable image reference.
//
// An agent either names an explicit image (copied through with no
// network call) or an agentbeats identifier (resolved via one bounded
// registry lookup). In the restricted execution environment explicit
// images are forbidden, forcing registry-mediated provenance.
package resolve

import (
	"context"
	"os"

	"github.com/star-xai-protocol/capsbench-leaderboard/internal/registry"
	"github.com/star-xai-protocol/capsbench-leaderboard/internal/scenario"
)

// RestrictedEnvVar signals the restricted execution environment when
// set to any non-empty value.
const RestrictedEnvVar = "GITHUB_ACTIONS"

// RestrictedFromEnv reports whether the process runs in the restricted
// execution environment.
func RestrictedFromEnv() bool {
	return os.Getenv(RestrictedEnvVar) != ""
}

// Resolver resolves agent image sources. Lookup is consulted only for
// agentbeats identifiers; a Resolver with a nil Lookup still handles
// explicit-image scenarios.
type Resolver struct {
	Lookup     registry.Lookup
	Restricted bool
}

// Resolve populates a.ResolvedImage (and ResolvedExternalID when the
// registry reports one) in place. displayName attributes errors to the
// entity. The lookup is attempted only after the image-source rule
// passes, so an ambiguous agent never causes a network call.
func (r *Resolver) Resolve(ctx context.Context, a *scenario.Agent, displayName string) error {
	if err := scenario.CheckImageSource(a, displayName, r.Restricted); err != nil {
		return err
	}

	if a.Image != "" {
		a.ResolvedImage = a.Image
		return nil
	}

	info, err := r.Lookup.AgentInfo(ctx, a.AgentbeatsID)
	if err != nil {
		return err
	}
	if info.DockerImage == "" {
		return &registry.ResolutionError{
			Code:         registry.ErrCodeMissingField,
			AgentbeatsID: a.AgentbeatsID,
			Message:      "response has no 'docker_image' field",
		}
	}

	a.ResolvedImage = info.DockerImage
	if info.ID != "" {
		a.ResolvedExternalID = info.ID
	}
	return nil
}

// ResolveScenario resolves the green agent, validates participant name
// uniqueness, then resolves every participant in document order.
// Resolution stops at the first error; since agents share no state,
// "first in sequence order" is the deterministic failure the caller
// reports.
func (r *Resolver) ResolveScenario(ctx context.Context, s *scenario.Scenario) error {
	if err := r.Resolve(ctx, &s.GreenAgent, scenario.DisplayName(&s.GreenAgent, true)); err != nil {
		return err
	}

	if err := scenario.ValidateNames(s.Participants); err != nil {
		return err
	}

	for i := range s.Participants {
		p := &s.Participants[i]
		if err := r.Resolve(ctx, p, scenario.DisplayName(p, false)); err != nil {
			return err
		}
	}
	return nil
}
