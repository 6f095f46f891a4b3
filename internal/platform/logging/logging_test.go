package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "WARN", Output: &buf})

	logger.Info().Msg("hidden")
	logger.Warn().Str("session_id", "abc").Msg("visible")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "abc", entry["session_id"])
	assert.Equal(t, "warn", entry["level"])
}

func TestNewFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "loud", Output: &buf})

	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestComponentTagsEntries(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Level: "debug", Output: &buf})

	Component("sse").Debug().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"sse"`)
}
