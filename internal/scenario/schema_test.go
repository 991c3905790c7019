package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckSchema_ConformingDocument(t *testing.T) {
	raw := map[string]any{
		"green_agent": map[string]any{
			"image": "img:green",
			"env":   map[string]any{"DEBUG": true, "PORT": int64(9009)},
		},
		"participants": []any{
			map[string]any{"name": "p1", "agentbeats_id": "abc"},
		},
		"config": map[string]any{"anything": map[string]any{"goes": "here"}},
	}

	assert.Empty(t, CheckSchema(raw))
}

func TestCheckSchema_EmptyDocument(t *testing.T) {
	assert.Empty(t, CheckSchema(map[string]any{}))
}

func TestCheckSchema_ReportsEveryViolation(t *testing.T) {
	raw := map[string]any{
		"green_agent": map[string]any{
			"image":   "img:green",
			"bogus":   "field",
			"another": "one",
		},
	}

	details := CheckSchema(raw)
	assert.GreaterOrEqual(t, len(details), 2)
}

func TestCheckSchema_RejectsWrongFieldType(t *testing.T) {
	raw := map[string]any{
		"green_agent": map[string]any{"image": int64(42)},
	}

	assert.NotEmpty(t, CheckSchema(raw))
}
