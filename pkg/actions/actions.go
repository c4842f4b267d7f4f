// Package actions implements side-effect tools: steps that do something to
// the world (dispatch a field crew, open a ticket) rather than query it.
// An action runs synchronously inside step-completion handling and its
// result is folded into the step's completion event, so a step always
// produces exactly one completion regardless of side effects.
package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Definition declares one named action and where to dispatch it.
type Definition struct {
	// Name identifies the action in event payloads (e.g. "dispatch_crew").
	Name string `yaml:"name"`
	// Agent is the runtime agent whose steps trigger this action.
	Agent string `yaml:"agent"`
	// URL receives the dispatch POST.
	URL string `yaml:"url"`
	// Timeout bounds the dispatch call. Zero means 10s.
	Timeout time.Duration `yaml:"timeout"`
}

// Result is what an action invocation produced.
type Result struct {
	// Name echoes the action definition's name.
	Name string
	// Response is the dispatch endpoint's reply, folded into the step's
	// completion payload.
	Response string
}

// Invoker dispatches actions. Implementations must be safe for concurrent
// use; the worker pool runs sessions in parallel.
type Invoker interface {
	// Match reports the action definition, if any, for a runtime agent.
	Match(agent string) (Definition, bool)
	// Invoke dispatches the action. The query is the step's original query
	// text, forwarded so the endpoint sees what the run asked for.
	Invoke(ctx context.Context, def Definition, query string) (Result, error)
}

// HTTPInvoker dispatches actions as JSON POSTs.
type HTTPInvoker struct {
	byAgent    map[string]Definition
	httpClient *http.Client
}

// NewHTTPInvoker indexes the given definitions by agent.
func NewHTTPInvoker(defs []Definition) *HTTPInvoker {
	byAgent := make(map[string]Definition, len(defs))
	for _, d := range defs {
		byAgent[d.Agent] = d
	}
	return &HTTPInvoker{
		byAgent:    byAgent,
		httpClient: &http.Client{},
	}
}

func (i *HTTPInvoker) Match(agent string) (Definition, bool) {
	def, ok := i.byAgent[agent]
	return def, ok
}

type dispatchRequest struct {
	Action string `json:"action"`
	Query  string `json:"query"`
}

func (i *HTTPInvoker) Invoke(ctx context.Context, def Definition, query string) (Result, error) {
	timeout := def.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(dispatchRequest{Action: def.Name, Query: query})
	if err != nil {
		return Result{}, fmt.Errorf("marshaling action request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, def.URL, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("building action request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("dispatching action %q: %w", def.Name, err)
	}
	defer resp.Body.Close()

	reply, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return Result{}, fmt.Errorf("action %q returned %d: %s", def.Name, resp.StatusCode, string(reply))
	}
	return Result{Name: def.Name, Response: string(reply)}, nil
}

// NoopInvoker matches nothing. Used when a scenario declares no actions.
type NoopInvoker struct{}

func (NoopInvoker) Match(string) (Definition, bool) { return Definition{}, false }

func (NoopInvoker) Invoke(context.Context, Definition, string) (Result, error) {
	return Result{}, fmt.Errorf("no actions configured")
}
