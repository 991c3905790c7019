// Package registry talks to the agentbeats lookup service, which maps
// an opaque agent identifier to a deployable container image.
//
// The Lookup interface is the capability handed to the resolver;
// production code uses Client, tests use Stub. One bounded request per
// identifier, no retries: any failure is fatal to the whole run.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// LookupTimeout bounds a single registry request.
const LookupTimeout = 30 * time.Second

// AgentInfo is the registry's answer for one identifier.
type AgentInfo struct {
	// DockerImage is the deployable image reference. Required; a
	// response without it is treated as malformed.
	DockerImage string `json:"docker_image"`

	// ID is the registry-assigned identifier for the agent, when the
	// service reports one. It may differ from the identifier used in
	// the lookup.
	ID string `json:"id"`
}

// Lookup is the single-shot request-response capability used to
// resolve an agentbeats identifier.
type Lookup interface {
	AgentInfo(ctx context.Context, agentbeatsID string) (*AgentInfo, error)
}

// Client queries the agentbeats HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given API base URL (for example
// "https://agentbeats.dev/api/agents").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: LookupTimeout},
	}
}

// AgentInfo fetches agent info via GET <base-url>/<id>. Transport
// failures, non-2xx responses, and undecodable bodies all return a
// *ResolutionError carrying the identifier.
func (c *Client) AgentInfo(ctx context.Context, agentbeatsID string) (*AgentInfo, error) {
	reqURL := c.baseURL + "/" + url.PathEscape(agentbeatsID)
	slog.Debug("fetching agent info", "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &ResolutionError{
			Code:         ErrCodeTransport,
			AgentbeatsID: agentbeatsID,
			Message:      "building lookup request",
			Err:          err,
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ResolutionError{
			Code:         ErrCodeTransport,
			AgentbeatsID: agentbeatsID,
			Message:      "request failed",
			Err:          err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused; the body content is
		// not part of the error contract.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &ResolutionError{
			Code:         ErrCodeStatus,
			AgentbeatsID: agentbeatsID,
			Message:      fmt.Sprintf("lookup returned %s", resp.Status),
		}
	}

	var info AgentInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, &ResolutionError{
			Code:         ErrCodeBody,
			AgentbeatsID: agentbeatsID,
			Message:      "invalid JSON response",
			Err:          err,
		}
	}

	slog.Debug("resolved agent", "agentbeats_id", agentbeatsID, "image", info.DockerImage)
	return &info, nil
}
