package actions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPInvokerMatch(t *testing.T) {
	inv := NewHTTPInvoker([]Definition{
		{Name: "dispatch_crew", Agent: "dispatch"},
		{Name: "open_ticket", Agent: "ticketing"},
	})

	def, ok := inv.Match("dispatch")
	require.True(t, ok)
	assert.Equal(t, "dispatch_crew", def.Name)

	_, ok = inv.Match("metrics")
	assert.False(t, ok)
}

func TestHTTPInvokerInvoke(t *testing.T) {
	var got dispatchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("crew 12 dispatched"))
	}))
	defer srv.Close()

	inv := NewHTTPInvoker(nil)
	def := Definition{Name: "dispatch_crew", Agent: "dispatch", URL: srv.URL}
	result, err := inv.Invoke(context.Background(), def, "send a crew to CLT-04")
	require.NoError(t, err)

	assert.Equal(t, "dispatch_crew", result.Name)
	assert.Equal(t, "crew 12 dispatched", result.Response)
	assert.Equal(t, "dispatch_crew", got.Action)
	assert.Equal(t, "send a crew to CLT-04", got.Query)
}

func TestHTTPInvokerInvokeNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no crews available", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	inv := NewHTTPInvoker(nil)
	_, err := inv.Invoke(context.Background(), Definition{Name: "dispatch_crew", URL: srv.URL}, "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "no crews available")
}

func TestNoopInvoker(t *testing.T) {
	var inv NoopInvoker
	_, ok := inv.Match("anything")
	assert.False(t, ok)
	_, err := inv.Invoke(context.Background(), Definition{}, "q")
	assert.Error(t, err)
}
