package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes a scenario document into a temp dir and returns
// its path.
func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeScenario(t, `
[green_agent]
image = "img:green"

[green_agent.env]
LOG_LEVEL = "INFO"

[[participants]]
name = "p1"
image = "img:p1"

[[participants]]
name = "p2"
agentbeats_id = "abc123"

[config]
task = "caption-evaluation"
timeout = 60
`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "img:green", s.GreenAgent.Image)
	assert.Equal(t, "INFO", s.GreenAgent.Env["LOG_LEVEL"])
	require.Len(t, s.Participants, 2)
	assert.Equal(t, "p1", s.Participants[0].Name)
	assert.Equal(t, "img:p1", s.Participants[0].Image)
	assert.Equal(t, "abc123", s.Participants[1].AgentbeatsID)
	assert.Equal(t, "caption-evaluation", s.Config["task"])
	assert.Equal(t, int64(60), s.Config["timeout"])
}

func TestLoad_DefaultsForAbsentSections(t *testing.T) {
	path := writeScenario(t, `
[green_agent]
image = "img:green"
`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.NotNil(t, s.Participants)
	assert.Empty(t, s.Participants)
	assert.NotNil(t, s.Config)
	assert.Empty(t, s.Config)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, ErrCodeUnreadable, parseErr.Code)
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeScenario(t, `[green_agent
image =`)

	_, err := Load(path)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, ErrCodeMalformed, parseErr.Code)
}

func TestLoad_SchemaRejectsUnknownAgentKey(t *testing.T) {
	path := writeScenario(t, `
[green_agent]
image = "img:green"
imge = "typo"
`)

	_, err := Load(path)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, ErrCodeSchema, parseErr.Code)
	assert.NotEmpty(t, parseErr.Details)
}

func TestLoad_SchemaRejectsUnnamedParticipant(t *testing.T) {
	path := writeScenario(t, `
[green_agent]
image = "img:green"

[[participants]]
image = "img:p1"
`)

	_, err := Load(path)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, ErrCodeSchema, parseErr.Code)
}

func TestLoad_SchemaRejectsNonScalarEnv(t *testing.T) {
	path := writeScenario(t, `
[green_agent]
image = "img:green"

[green_agent.env]
NESTED = { a = 1 }
`)

	_, err := Load(path)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, ErrCodeSchema, parseErr.Code)
}

func TestLoad_GreenAgentAbsentIsParseable(t *testing.T) {
	// A scenario without a green_agent table parses; the missing image
	// source is a resolution-time config error, not a parse error.
	path := writeScenario(t, `
[[participants]]
name = "p1"
image = "img:p1"
`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, s.GreenAgent.Image)
	assert.Empty(t, s.GreenAgent.AgentbeatsID)
}

func TestAgents_ReturnsPointersIntoScenario(t *testing.T) {
	s := &Scenario{
		GreenAgent:   Agent{Image: "img:green"},
		Participants: []Agent{{Name: "p1", Image: "img:p1"}},
	}

	agents := s.Agents()
	require.Len(t, agents, 2)

	agents[1].ResolvedImage = "img:p1"
	assert.Equal(t, "img:p1", s.Participants[0].ResolvedImage)
}
