package events

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNotifyPayloadEnrichesRoutingFields(t *testing.T) {
	out, err := buildNotifyPayload(TypeMessageDelta, "sess-1", 7, []byte(`{"id":"m1","text":"hi"}`))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, TypeMessageDelta, m["type"])
	assert.Equal(t, "sess-1", m["session_id"])
	assert.Equal(t, float64(7), m["offset"])
	assert.Equal(t, "hi", m["text"])
	assert.NotContains(t, m, "truncated")
}

func TestBuildNotifyPayloadTruncatesOversized(t *testing.T) {
	big, err := json.Marshal(MessageCompletePayload{
		ID:   "m1",
		Text: strings.Repeat("x", notifyLimit),
	})
	require.NoError(t, err)

	out, err := buildNotifyPayload(TypeMessageComplete, "sess-1", 12, big)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(out), notifyLimit)

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, true, m["truncated"])
	assert.Equal(t, float64(12), m["offset"])
	assert.Equal(t, TypeMessageComplete, m["type"])
	assert.NotContains(t, m, "text")
}
