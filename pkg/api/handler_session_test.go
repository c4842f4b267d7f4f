package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	echo "github.com/labstack/echo/v5"
	"github.com/stretchr/testify/assert"
)

// Only parameter validation is covered here (returns 400 before hitting the
// manager). Happy paths are covered by integration/e2e tests that have a
// real database behind the services.

func newJSONContext(t *testing.T, method, target, body string) *echo.Context {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec)
}

func assertHTTPError(t *testing.T, err error, wantCode int, wantMsg string) {
	t.Helper()
	if !assert.Error(t, err) {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if assert.True(t, ok, "expected echo.HTTPError") {
		assert.Equal(t, wantCode, he.Code)
		assert.Contains(t, he.Message, wantMsg)
	}
}

func TestCreateSessionHandler_Validation(t *testing.T) {
	s := &Server{}

	t.Run("missing scenario", func(t *testing.T) {
		c := newJSONContext(t, http.MethodPost, "/api/v1/sessions",
			`{"input_text": "api latency is spiking"}`)
		assertHTTPError(t, s.createSessionHandler(c), http.StatusBadRequest, "scenario field is required")
	})

	t.Run("missing input_text", func(t *testing.T) {
		c := newJSONContext(t, http.MethodPost, "/api/v1/sessions",
			`{"scenario": "network-triage"}`)
		assertHTTPError(t, s.createSessionHandler(c), http.StatusBadRequest, "input_text field is required")
	})

	t.Run("oversized input_text", func(t *testing.T) {
		big := strings.Repeat("x", maxInputTextSize+1)
		c := newJSONContext(t, http.MethodPost, "/api/v1/sessions",
			`{"scenario": "network-triage", "input_text": "`+big+`"}`)
		assertHTTPError(t, s.createSessionHandler(c), http.StatusRequestEntityTooLarge, "maximum size")
	})

	t.Run("malformed body", func(t *testing.T) {
		c := newJSONContext(t, http.MethodPost, "/api/v1/sessions", `{"scenario": `)
		err := s.createSessionHandler(c)
		if assert.Error(t, err) {
			he, ok := err.(*echo.HTTPError)
			if assert.True(t, ok) {
				assert.Equal(t, http.StatusBadRequest, he.Code)
			}
		}
	})
}

func TestSendMessageHandler_Validation(t *testing.T) {
	s := &Server{}

	t.Run("missing session id", func(t *testing.T) {
		c := newJSONContext(t, http.MethodPost, "/api/v1/sessions//message",
			`{"text": "dig deeper"}`)
		assertHTTPError(t, s.sendMessageHandler(c), http.StatusBadRequest, "session id")
	})

	t.Run("missing text", func(t *testing.T) {
		e := echo.New()
		e.POST("/api/v1/sessions/:id/message", s.sendMessageHandler)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/abc/message", strings.NewReader(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "text field is required")
	})
}

func TestListSessionsHandler_Validation(t *testing.T) {
	s := &Server{}

	tests := []struct {
		name   string
		query  string
		errMsg string
	}{
		{"invalid status value", "status=bogus", "invalid status"},
		{"comma-separated with one invalid", "status=completed,bogus", "invalid status: bogus"},
		{"non-numeric limit", "limit=ten", "invalid limit"},
		{"zero limit", "limit=0", "invalid limit"},
		{"limit over cap", "limit=501", "invalid limit"},
		{"negative offset", "offset=-1", "invalid offset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newJSONContext(t, http.MethodGet, "/api/v1/sessions?"+tt.query, "")
			assertHTTPError(t, s.listSessionsHandler(c), http.StatusBadRequest, tt.errMsg)
		})
	}
}

func TestSessionIDRequired(t *testing.T) {
	s := &Server{}

	handlers := map[string]func(*echo.Context) error{
		"get":    s.getSessionHandler,
		"cancel": s.cancelSessionHandler,
		"delete": s.deleteSessionHandler,
		"stream": s.streamSessionHandler,
	}

	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			c := newJSONContext(t, http.MethodGet, "/api/v1/sessions/", "")
			assertHTTPError(t, handler(c), http.StatusBadRequest, "session id")
		})
	}
}
