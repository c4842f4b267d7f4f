package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentientmobilefurniture/faultline/pkg/conversation"
	"github.com/sentientmobilefurniture/faultline/pkg/events"
	"github.com/sentientmobilefurniture/faultline/pkg/sse"
)

func writeFrame(t *testing.T, w http.ResponseWriter, offset int, p events.Payload) {
	t.Helper()
	data, err := json.Marshal(p)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	m["offset"] = offset
	data, err = json.Marshal(m)
	require.NoError(t, err)
	_, err = fmt.Fprint(w, sse.Frame{Event: p.EventType(), Data: string(data)}.Encode())
	require.NoError(t, err)
	w.(http.Flusher).Flush()
}

func TestCreateSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/sessions", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "grid-outage", body["scenario"])
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"session_id": "s-1"})
	}))
	defer srv.Close()

	id, err := New(srv.URL).CreateSession(context.Background(), "grid-outage", "substation 7 dark")
	require.NoError(t, err)
	assert.Equal(t, "s-1", id)
}

func TestSendMessageConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "session already has a run in progress"})
	}))
	defer srv.Close()

	err := New(srv.URL).SendMessage(context.Background(), "s-1", "and the backup feed?")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "run in progress")
}

func TestStreamDecodesEventsUntilDone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/sessions/s-1/stream", r.URL.Path)
		w.Header().Set("Content-Type", "text/event-stream")
		writeFrame(t, w, 0, events.RunStartPayload{RunID: "run-1", InputText: "check"})
		writeFrame(t, w, 1, events.MessageCompletePayload{ID: "m-1", Text: "all clear"})
		writeFrame(t, w, -1, events.DonePayload{})
	}))
	defer srv.Close()

	var got []events.Event
	err := New(srv.URL).Stream(context.Background(), "s-1", 0, func(ev events.Event) error {
		got = append(got, ev)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, events.TypeRunStart, got[0].Type())
	assert.Equal(t, 1, got[1].Offset)
	assert.Equal(t, events.TypeDone, got[2].Type())
}

func TestStreamPassesSince(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("since"))
		w.Header().Set("Content-Type", "text/event-stream")
		writeFrame(t, w, -1, events.DonePayload{})
	}))
	defer srv.Close()

	err := New(srv.URL).Stream(context.Background(), "s-1", 7, func(events.Event) error { return nil })
	require.NoError(t, err)
}

func TestFollowSuppressesDuplicatesAcrossReconnect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		// Server replays one event the client already applied, then the
		// genuine tail.
		writeFrame(t, w, 2, events.ToolCallStartPayload{ID: "tc-2", Step: 2, Agent: "logs"})
		writeFrame(t, w, 3, events.ToolCallCompletePayload{ID: "tc-2", Step: 2, Agent: "logs", Response: "clean"})
		writeFrame(t, w, 4, events.RunCompletePayload{Steps: 2})
		writeFrame(t, w, -1, events.DonePayload{})
	}))
	defer srv.Close()

	conv := conversation.New("s-1")
	conversation.Apply(conv, events.RunStartPayload{RunID: "run-1", InputText: "check"}, true)
	conversation.Apply(conv, events.ToolCallStartPayload{ID: "tc-2", Step: 2, Agent: "logs"}, true)

	lastSeen, err := New(srv.URL).Follow(context.Background(), "s-1", conv, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, lastSeen)

	asst := conv.Messages[1]
	require.Len(t, asst.ToolCalls, 1, "replayed duplicate must not re-append")
	assert.Equal(t, conversation.ToolCallComplete, asst.ToolCalls[0].Status)
	assert.Equal(t, conversation.MessageDone, asst.Status)
}

func TestStreamToleratesChunkedFrames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		// Split one frame across writes mid-field.
		wire := sse.Frame{Event: "status", Data: `{"message":"working","offset":-1}`}.Encode() +
			sse.Frame{Event: "done", Data: `{"offset":-1}`}.Encode()
		half := len(wire) / 2
		fmt.Fprint(w, wire[:half])
		flusher.Flush()
		fmt.Fprint(w, wire[half:])
		flusher.Flush()
	}))
	defer srv.Close()

	var types []string
	err := New(srv.URL).Stream(context.Background(), "s-1", 0, func(ev events.Event) error {
		types = append(types, ev.Type())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{events.TypeStatus, events.TypeDone}, types)
}
