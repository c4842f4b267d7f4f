package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	echo "github.com/labstack/echo/v5"
	"github.com/stretchr/testify/assert"

	"github.com/sentientmobilefurniture/faultline/pkg/events"
)

func TestStreamHandler_InvalidSince(t *testing.T) {
	s := &Server{}

	tests := []struct {
		name  string
		since string
	}{
		{"non-numeric", "abc"},
		{"negative", "-3"},
		{"float", "1.5"},
	}

	e := echo.New()
	e.GET("/api/v1/sessions/:id/stream", s.streamSessionHandler)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/abc/stream?since="+tt.since, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "invalid since")
		})
	}
}

func TestIsRunTerminal(t *testing.T) {
	assert.True(t, isRunTerminal(events.TypeRunComplete, ""))
	assert.True(t, isRunTerminal(events.TypeError, ""))
	assert.True(t, isRunTerminal(events.TypeStatus, "cancelling"))

	assert.False(t, isRunTerminal(events.TypeStatus, "retrying run after capacity error"))
	assert.False(t, isRunTerminal(events.TypeToolCallComplete, ""))
	assert.False(t, isRunTerminal(events.TypeMessageComplete, ""))
}

func TestStoredFrameDataMergesOffset(t *testing.T) {
	data, err := storedFrameData(events.TypeMessageDelta, map[string]any{
		"id":   "m-1",
		"text": "the ",
	}, 7)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"id": "m-1", "text": "the ", "type": "message.delta", "offset": 7}`, string(data))
}
