package runtime

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sseWrite(t *testing.T, w http.ResponseWriter, event, data string) {
	t.Helper()
	_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	require.NoError(t, err)
	w.(http.Flusher).Flush()
}

func collect(t *testing.T, ch <-chan Event) []Event {
	t.Helper()
	var out []Event
	for ev := range ch {
		out = append(out, ev)
	}
	return out
}

func TestRemoteRuntimeStreamsNativeEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/runs", r.URL.Path)
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		assert.Equal(t, "incident-data", r.Header.Get("X-Dataset"))
		assert.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "text/event-stream")
		sseWrite(t, w, "thread.created", `{"thread_id":"th-1"}`)
		sseWrite(t, w, "run.started", `{"run_id":"r-1"}`)
		sseWrite(t, w, "step.started", `{"step_id":"s1","agent":"metrics","query":"q"}`)
		sseWrite(t, w, "step.completed", `{"step_id":"s1","agent":"metrics","duration":0.4,"query":"q","response":"resp"}`)
		sseWrite(t, w, "message.delta", `{"text":"half "}`)
		sseWrite(t, w, "message.completed", `{"text":"half done"}`)
		sseWrite(t, w, "run.completed", `{"steps":1,"tokens":42,"duration":1.1}`)
	}))
	defer srv.Close()

	rt := NewRemoteRuntime(srv.URL, WithAPIKey("sekrit"))
	ch, err := rt.Run(context.Background(), RunInput{InputText: "alert", Dataset: "incident-data"})
	require.NoError(t, err)

	evts := collect(t, ch)
	require.Len(t, evts, 7)
	assert.Equal(t, ThreadCreated{ThreadID: "th-1"}, evts[0])
	assert.Equal(t, RunStarted{RunID: "r-1"}, evts[1])
	assert.Equal(t, MessageDelta{Text: "half "}, evts[4])
	assert.Equal(t, RunCompleted{Steps: 1, Tokens: 42, Duration: 1.1}, evts[6])
}

func TestRemoteRuntimeIgnoresUnknownFrames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		sseWrite(t, w, "heartbeat", `{}`)
		sseWrite(t, w, "run.started", `{"run_id":"r-1"}`)
		sseWrite(t, w, "run.failed", `{"message":"boom","code":"capacity","recoverable":true}`)
	}))
	defer srv.Close()

	rt := NewRemoteRuntime(srv.URL)
	ch, err := rt.Run(context.Background(), RunInput{InputText: "alert"})
	require.NoError(t, err)

	evts := collect(t, ch)
	require.Len(t, evts, 2)
	assert.Equal(t, RunStarted{RunID: "r-1"}, evts[0])
	assert.Equal(t, RunFailed{Message: "boom", Code: "capacity", Recoverable: true}, evts[1])
}

func TestRemoteRuntimeRejectedSubmit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "over capacity", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	rt := NewRemoteRuntime(srv.URL)
	_, err := rt.Run(context.Background(), RunInput{InputText: "alert"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestRemoteRuntimeTruncatedStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		sseWrite(t, w, "run.started", `{"run_id":"r-1"}`)
		// Connection drops mid-run with no terminal frame.
	}))
	defer srv.Close()

	rt := NewRemoteRuntime(srv.URL)
	ch, err := rt.Run(context.Background(), RunInput{InputText: "alert"})
	require.NoError(t, err)

	evts := collect(t, ch)
	// EOF ends the stream without a synthetic failure; the emitter decides
	// what a truncated stream means.
	require.Len(t, evts, 1)
	assert.Equal(t, RunStarted{RunID: "r-1"}, evts[0])
}

func TestRemoteRuntimeHealthy(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	rt := NewRemoteRuntime(srv.URL)
	require.NoError(t, rt.Healthy(context.Background()))

	healthy = false
	assert.Error(t, rt.Healthy(context.Background()))
}
