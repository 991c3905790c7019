package transcode

import (
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/star-xai-protocol/capsbench-leaderboard/internal/scenario"
)

func resolvedScenario() *scenario.Scenario {
	return &scenario.Scenario{
		GreenAgent: scenario.Agent{
			Image:         "img:green",
			ResolvedImage: "img:green",
		},
		Participants: []scenario.Agent{
			{Name: "p1", Image: "img:p1", ResolvedImage: "img:p1"},
			{
				Name:               "p2",
				AgentbeatsID:       "abc123",
				ResolvedImage:      "img:p2",
				ResolvedExternalID: "9",
			},
		},
		Config: map[string]any{
			"task":    "caption-evaluation",
			"timeout": int64(60),
		},
	}
}

// transcoded mirrors the document shape the agentbeats client reads.
type transcoded struct {
	GreenAgent struct {
		Endpoint string `toml:"endpoint"`
	} `toml:"green_agent"`
	Participants []struct {
		Role         string `toml:"role"`
		Endpoint     string `toml:"endpoint"`
		AgentbeatsID string `toml:"agentbeats_id"`
	} `toml:"participants"`
	Config map[string]any `toml:"config"`
}

func TestRender_RoundTrip(t *testing.T) {
	out, err := Render(resolvedScenario(), scenario.DefaultSettings())
	require.NoError(t, err)

	var doc transcoded
	require.NoError(t, toml.Unmarshal(out, &doc))

	assert.Equal(t, "http://green-agent:9009", doc.GreenAgent.Endpoint)

	require.Len(t, doc.Participants, 2)
	assert.Equal(t, "p1", doc.Participants[0].Role)
	assert.Equal(t, "http://p1:9009", doc.Participants[0].Endpoint)
	assert.Empty(t, doc.Participants[0].AgentbeatsID, "explicit-image participant carries no external id")

	assert.Equal(t, "p2", doc.Participants[1].Role)
	assert.Equal(t, "http://p2:9009", doc.Participants[1].Endpoint)
	assert.Equal(t, "9", doc.Participants[1].AgentbeatsID, "registry-assigned id wins over the input identifier")

	// Config passes through verbatim.
	assert.Equal(t, "caption-evaluation", doc.Config["task"])
	assert.Equal(t, int64(60), doc.Config["timeout"])
}

func TestRender_FallsBackToInputIdentifier(t *testing.T) {
	s := resolvedScenario()
	s.Participants[1].ResolvedExternalID = ""

	out, err := Render(s, scenario.DefaultSettings())
	require.NoError(t, err)

	var doc transcoded
	require.NoError(t, toml.Unmarshal(out, &doc))
	assert.Equal(t, "abc123", doc.Participants[1].AgentbeatsID)
}

func TestRender_ParticipantOrderPreserved(t *testing.T) {
	out, err := Render(resolvedScenario(), scenario.DefaultSettings())
	require.NoError(t, err)

	text := string(out)
	assert.Less(t, strings.Index(text, `role = "p1"`), strings.Index(text, `role = "p2"`))
}

func TestRender_Deterministic(t *testing.T) {
	cfg := scenario.DefaultSettings()

	first, err := Render(resolvedScenario(), cfg)
	require.NoError(t, err)
	second, err := Render(resolvedScenario(), cfg)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestRender_EmptyConfigStillEmitsSection(t *testing.T) {
	s := resolvedScenario()
	s.Config = map[string]any{}

	out, err := Render(s, scenario.DefaultSettings())
	require.NoError(t, err)
	assert.Contains(t, string(out), "[config]")
}

func TestRender_NoParticipants(t *testing.T) {
	s := &scenario.Scenario{
		GreenAgent: scenario.Agent{Image: "img:green", ResolvedImage: "img:green"},
		Config:     map[string]any{},
	}

	out, err := Render(s, scenario.DefaultSettings())
	require.NoError(t, err)

	var doc transcoded
	require.NoError(t, toml.Unmarshal(out, &doc))
	assert.Empty(t, doc.Participants)
	assert.Equal(t, "http://green-agent:9009", doc.GreenAgent.Endpoint)
}
