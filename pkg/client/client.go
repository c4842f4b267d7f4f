// Package client is the Go consumer of the faultline API: session CRUD over
// REST plus the live/replayed event stream, reduced into conversation state
// with pkg/conversation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sentientmobilefurniture/faultline/pkg/models"
)

// Client talks to a faultline server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// New creates a client for the given base URL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		// Streaming responses stay open indefinitely; per-call budgets come
		// from the caller's context.
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// CreateSession starts a new investigation session and returns its id. The
// run proceeds in the background; observe it with Stream.
func (c *Client) CreateSession(ctx context.Context, scenario, inputText string) (string, error) {
	var resp struct {
		SessionID string `json:"session_id"`
	}
	body := map[string]string{"scenario": scenario, "input_text": inputText}
	if err := c.do(ctx, http.MethodPost, "/api/v1/sessions", body, &resp); err != nil {
		return "", err
	}
	return resp.SessionID, nil
}

// SendMessage continues an existing session with a follow-up turn.
func (c *Client) SendMessage(ctx context.Context, sessionID, text string) error {
	body := map[string]string{"text": text}
	return c.do(ctx, http.MethodPost, "/api/v1/sessions/"+url.PathEscape(sessionID)+"/message", body, nil)
}

// GetSession fetches the full session record including its event log.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*models.SessionDetail, error) {
	var detail models.SessionDetail
	if err := c.do(ctx, http.MethodGet, "/api/v1/sessions/"+url.PathEscape(sessionID), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListSessions lists session summaries, optionally filtered by scenario.
func (c *Client) ListSessions(ctx context.Context, scenario string) ([]models.SessionSummary, error) {
	path := "/api/v1/sessions"
	if scenario != "" {
		path += "?scenario=" + url.QueryEscape(scenario)
	}
	var resp models.SessionListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sessions, nil
}

// CancelSession requests cancellation of the in-progress run. The response
// acknowledges the request; completion shows up on the stream.
func (c *Client) CancelSession(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/sessions/"+url.PathEscape(sessionID)+"/cancel", nil, nil)
}

// DeleteSession removes a session permanently.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/sessions/"+url.PathEscape(sessionID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body struct {
		Error string `json:"error"`
	}
	msg := string(data)
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		msg = body.Error
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

func streamPath(sessionID string, since int) string {
	path := "/api/v1/sessions/" + url.PathEscape(sessionID) + "/stream"
	if since > 0 {
		path += "?since=" + strconv.Itoa(since)
	}
	return path
}
