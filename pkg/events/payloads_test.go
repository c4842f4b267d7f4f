package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTypedPayload(t *testing.T) {
	ev, err := Decode(TypeToolCallComplete, []byte(`{
		"id": "call-1", "step": 2, "agent": "metrics",
		"duration": 0.7, "query": "q", "response": "r", "offset": 14
	}`))
	require.NoError(t, err)

	assert.Equal(t, 14, ev.Offset)
	p, ok := ev.Payload.(ToolCallCompletePayload)
	require.True(t, ok, "payload must be the value type, not a pointer")
	assert.Equal(t, "call-1", p.ID)
	assert.Equal(t, 2, p.Step)
	assert.Equal(t, 0.7, p.Duration)
}

func TestDecodeWithoutOffset(t *testing.T) {
	ev, err := Decode(TypeStatus, []byte(`{"message":"cancelling"}`))
	require.NoError(t, err)
	assert.Equal(t, -1, ev.Offset)
	assert.Equal(t, StatusPayload{Message: "cancelling"}, ev.Payload)
}

func TestDecodeUnknownType(t *testing.T) {
	_, err := Decode("bogus.event", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event type")
}

func TestDecodeMalformedJSON(t *testing.T) {
	_, err := Decode(TypeRunStart, []byte(`{"run_id":`))
	require.Error(t, err)
}

func TestDecodeStoredRoundTrip(t *testing.T) {
	stored := map[string]any{
		"id":    "call-9",
		"step":  float64(1), // JSON numbers arrive as float64
		"agent": "logs",
	}
	ev, err := DecodeStored(TypeToolCallStart, stored, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, ev.Offset)
	p, ok := ev.Payload.(ToolCallStartPayload)
	require.True(t, ok)
	assert.Equal(t, "call-9", p.ID)
	assert.Equal(t, 1, p.Step)
	assert.Equal(t, "logs", p.Agent)
}

func TestEventTypeAccessor(t *testing.T) {
	assert.Equal(t, TypeDone, New(DonePayload{}).Type())
	assert.Equal(t, TypeRunComplete, New(RunCompletePayload{Steps: 3}).Type())
}

func TestSessionChannelName(t *testing.T) {
	assert.Equal(t, "session:abc-123", SessionChannel("abc-123"))
}
