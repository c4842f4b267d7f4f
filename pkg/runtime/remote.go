package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sentientmobilefurniture/faultline/pkg/sse"
)

// RemoteRuntime talks to the hosted agent runtime over HTTP. A run is a
// single POST whose response body is an SSE stream of native events; the
// stream is parsed incrementally and surfaced on the event channel.
type RemoteRuntime struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// RemoteOption configures a RemoteRuntime.
type RemoteOption func(*RemoteRuntime)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(r *RemoteRuntime) { r.httpClient = c }
}

// WithAPIKey sets the bearer token sent on every request.
func WithAPIKey(key string) RemoteOption {
	return func(r *RemoteRuntime) { r.apiKey = key }
}

// NewRemoteRuntime creates a runtime client for the given base URL.
func NewRemoteRuntime(baseURL string, opts ...RemoteOption) *RemoteRuntime {
	r := &RemoteRuntime{
		baseURL: baseURL,
		// No overall client timeout: a run streams for tens of seconds and
		// the per-attempt budget is enforced by the caller's context.
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// runRequest is the wire shape of a run submission.
type runRequest struct {
	ThreadID  string `json:"thread_id,omitempty"`
	InputText string `json:"input_text"`
}

// Run submits the input and streams native events until the response body
// ends or ctx is cancelled.
func (r *RemoteRuntime) Run(ctx context.Context, in RunInput) (<-chan Event, error) {
	body, err := json.Marshal(runRequest{ThreadID: in.ThreadID, InputText: in.InputText})
	if err != nil {
		return nil, fmt.Errorf("marshaling run request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/runs", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building run request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if in.Dataset != "" {
		req.Header.Set("X-Dataset", in.Dataset)
	}
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submitting run: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("runtime returned %d: %s", resp.StatusCode, string(msg))
	}

	out := make(chan Event)
	go r.streamReader(ctx, resp.Body, out)
	return out, nil
}

// streamReader parses the SSE response into native events. Transport-level
// failures mid-stream surface as a RunFailed marked recoverable so the
// emitter's retry policy applies.
func (r *RemoteRuntime) streamReader(ctx context.Context, body io.ReadCloser, out chan<- Event) {
	defer close(out)
	defer body.Close()

	parser := sse.NewParser()
	buf := make([]byte, 4096)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			frames, err := parser.Feed(buf[:n])
			if err != nil {
				r.send(ctx, out, RunFailed{Message: err.Error(), Code: "stream_parse", Recoverable: false})
				return
			}
			for _, frame := range frames {
				ev, err := decodeNativeEvent(frame)
				if err != nil {
					slog.Warn("Skipping undecodable runtime event", "event", frame.Event, "error", err)
					continue
				}
				if ev == nil {
					continue
				}
				if !r.send(ctx, out, ev) {
					return
				}
				if _, done := ev.(RunCompleted); done {
					return
				}
				if _, failed := ev.(RunFailed); failed {
					return
				}
			}
		}
		if readErr != nil {
			if readErr == io.EOF || ctx.Err() != nil {
				return
			}
			r.send(ctx, out, RunFailed{Message: readErr.Error(), Code: "stream_read", Recoverable: true})
			return
		}
	}
}

func (r *RemoteRuntime) send(ctx context.Context, out chan<- Event, ev Event) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// decodeNativeEvent maps one SSE frame onto a native event. Unknown frame
// types return (nil, nil) and are ignored — the runtime may add
// informational frames without breaking older clients.
func decodeNativeEvent(frame sse.Frame) (Event, error) {
	data := []byte(frame.Data)
	switch frame.Event {
	case "thread.created":
		var ev struct {
			ThreadID string `json:"thread_id"`
		}
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, err
		}
		return ThreadCreated{ThreadID: ev.ThreadID}, nil
	case "run.started":
		var ev struct {
			RunID string `json:"run_id"`
		}
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, err
		}
		return RunStarted{RunID: ev.RunID}, nil
	case "step.started":
		var ev struct {
			StepID    string `json:"step_id"`
			Agent     string `json:"agent"`
			Query     string `json:"query"`
			Reasoning string `json:"reasoning"`
		}
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, err
		}
		return StepStarted(ev), nil
	case "step.completed":
		var ev struct {
			StepID         string           `json:"step_id"`
			Agent          string           `json:"agent"`
			Duration       float64          `json:"duration"`
			Query          string           `json:"query"`
			Response       string           `json:"response"`
			Err            string           `json:"error"`
			Visualizations []map[string]any `json:"visualizations"`
			SubSteps       []map[string]any `json:"sub_steps"`
		}
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, err
		}
		return StepCompleted(ev), nil
	case "message.delta":
		var ev struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, err
		}
		return MessageDelta{Text: ev.Text}, nil
	case "message.completed":
		var ev struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, err
		}
		return MessageCompleted{Text: ev.Text}, nil
	case "run.completed":
		var ev struct {
			Steps    int     `json:"steps"`
			Tokens   int     `json:"tokens"`
			Duration float64 `json:"duration"`
		}
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, err
		}
		return RunCompleted(ev), nil
	case "run.failed":
		var ev struct {
			Message     string `json:"message"`
			Code        string `json:"code"`
			Recoverable bool   `json:"recoverable"`
		}
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, err
		}
		return RunFailed(ev), nil
	default:
		return nil, nil
	}
}

// Healthy probes the runtime's health endpoint with a short budget.
func (r *RemoteRuntime) Healthy(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, r.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("runtime health probe: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("runtime unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
