// Package emitter adapts the hosted runtime's native callback stream into
// the canonical investigation event stream. It owns tool-call identity
// (fresh UUID at step start, reused verbatim at completion), the retry
// policy for recoverable runtime failures, and cooperative cancellation.
package emitter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sentientmobilefurniture/faultline/pkg/actions"
	"github.com/sentientmobilefurniture/faultline/pkg/events"
	"github.com/sentientmobilefurniture/faultline/pkg/runtime"
)

// MaxRetries is how many times a run is re-attempted after a recoverable
// failure before the emitter gives up with a terminal error.
const MaxRetries = 2

// DefaultAttemptTimeout bounds a single run attempt's wall clock.
const DefaultAttemptTimeout = 10 * time.Minute

// recoverableCodes are runtime failure codes eligible for retry regardless
// of the runtime's own recoverable flag. Capacity-class failures and
// mid-stream transport drops resolve themselves; everything else does not.
var recoverableCodes = map[string]struct{}{
	"rate_limited": {},
	"capacity":     {},
	"overloaded":   {},
	"stream_read":  {},
}

// IsRecoverable reports whether a runtime failure should be retried.
func IsRecoverable(code string, flagged bool) bool {
	if flagged {
		return true
	}
	_, ok := recoverableCodes[code]
	return ok
}

// Emitter drives runs against a runtime and emits canonical events.
type Emitter struct {
	runtime        runtime.Runtime
	invoker        actions.Invoker
	attemptTimeout time.Duration
	logger         *slog.Logger
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithAttemptTimeout overrides the per-attempt wall-clock budget.
func WithAttemptTimeout(d time.Duration) Option {
	return func(e *Emitter) { e.attemptTimeout = d }
}

// New creates an Emitter. invoker may be actions.NoopInvoker{} when the
// scenario declares no side-effect tools.
func New(rt runtime.Runtime, invoker actions.Invoker, opts ...Option) *Emitter {
	e := &Emitter{
		runtime:        rt,
		invoker:        invoker,
		attemptTimeout: DefaultAttemptTimeout,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes one run (with retries) and streams canonical events on the
// returned channel, closing it when the run reaches a terminal state. The
// stream itself carries the outcome: it ends after exactly one of
// run.complete (success), error (terminal failure), or a "cancelling"
// status (cancellation observed). session.created is emitted at most once
// even across retries.
func (e *Emitter) Run(ctx context.Context, in runtime.RunInput, cancel *CancelToken) <-chan events.Payload {
	out := make(chan events.Payload, 64)
	go func() {
		defer close(out)
		e.run(ctx, in, cancel, out)
	}()
	return out
}

func (e *Emitter) run(ctx context.Context, in runtime.RunInput, cancel *CancelToken, out chan<- events.Payload) {
	log := e.logger.With("thread_id", in.ThreadID)
	threadReported := false

	for attempt := 0; ; attempt++ {
		if cancel.Cancelled() || ctx.Err() != nil {
			e.send(ctx, out, events.StatusPayload{Message: "cancelling"})
			return
		}

		attemptCtx, cancelAttempt := context.WithTimeout(ctx, e.attemptTimeout)
		failure, done := e.attempt(attemptCtx, in, cancel, out, &threadReported)
		cancelAttempt()
		if done {
			return
		}

		if !IsRecoverable(failure.Code, failure.Recoverable) || attempt >= MaxRetries {
			e.send(ctx, out, events.ErrorPayload{
				Message:     failure.Message,
				Code:        failure.Code,
				Recoverable: false,
			})
			return
		}
		log.Warn("Run attempt failed, retrying",
			"attempt", attempt+1, "code", failure.Code, "error", failure.Message)
		e.send(ctx, out, events.StatusPayload{
			Message: fmt.Sprintf("retrying after recoverable error (attempt %d of %d): %s",
				attempt+2, MaxRetries+1, failure.Message),
		})
	}
}

// attempt drives a single runtime run. It returns done=true when the run
// reached a terminal outcome (success, terminal error already emitted, or
// cancellation); otherwise the returned failure describes a candidate for
// retry.
func (e *Emitter) attempt(ctx context.Context, in runtime.RunInput, cancel *CancelToken, out chan<- events.Payload, threadReported *bool) (runtime.RunFailed, bool) {
	stream, err := e.runtime.Run(ctx, in)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return runtime.RunFailed{Message: err.Error(), Code: "timeout", Recoverable: true}, false
		}
		return runtime.RunFailed{Message: err.Error(), Code: "run_submit", Recoverable: true}, false
	}

	// Tool-call identity for this attempt. Keyed by the runtime's step id,
	// dropped once the completion event is out.
	callIDs := make(map[string]string)
	step := 0
	messageID := ""

	for ev := range stream {
		switch ev := ev.(type) {
		case runtime.ThreadCreated:
			if !*threadReported {
				*threadReported = true
				e.send(ctx, out, events.SessionCreatedPayload{ThreadID: ev.ThreadID})
			}

		case runtime.RunStarted:
			e.send(ctx, out, events.RunStartPayload{
				RunID:     ev.RunID,
				InputText: in.InputText,
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			})

		case runtime.StepStarted:
			step++
			id := uuid.NewString()
			callIDs[ev.StepID] = id
			e.send(ctx, out, events.ToolCallStartPayload{
				ID:        id,
				Step:      step,
				Agent:     ev.Agent,
				Query:     ev.Query,
				Reasoning: ev.Reasoning,
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			})

		case runtime.StepCompleted:
			id, ok := callIDs[ev.StepID]
			if !ok {
				// Completion without a matching start; assign identity now
				// so the event is still well formed.
				step++
				id = uuid.NewString()
			}
			delete(callIDs, ev.StepID)
			e.send(ctx, out, e.completeToolCall(ctx, id, step, ev))

		case runtime.MessageDelta:
			if messageID == "" {
				messageID = uuid.NewString()
				e.send(ctx, out, events.MessageStartPayload{ID: messageID})
			}
			e.send(ctx, out, events.MessageDeltaPayload{ID: messageID, Text: ev.Text})

		case runtime.MessageCompleted:
			if messageID == "" {
				messageID = uuid.NewString()
				e.send(ctx, out, events.MessageStartPayload{ID: messageID})
			}
			e.send(ctx, out, events.MessageCompletePayload{ID: messageID, Text: ev.Text})

		case runtime.RunCompleted:
			e.send(ctx, out, events.RunCompletePayload{
				Steps:  ev.Steps,
				Tokens: ev.Tokens,
				Time:   ev.Duration,
			})
			return runtime.RunFailed{}, true

		case runtime.RunFailed:
			return ev, false
		}
	}

	// Stream ended without a terminal event. A cancelled attempt is
	// terminal; a deadline is a retry candidate; anything else means the
	// runtime hung up mid-run.
	if cancel.Cancelled() {
		e.send(ctx, out, events.StatusPayload{Message: "cancelling"})
		return runtime.RunFailed{}, true
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return runtime.RunFailed{Message: "run attempt timed out", Code: "timeout", Recoverable: true}, false
	}
	return runtime.RunFailed{Message: "runtime stream ended before run completion", Code: "stream_truncated", Recoverable: true}, false
}

// completeToolCall builds the completion event for a step, invoking the
// matching side-effect action inline so the step still yields exactly one
// completion event.
func (e *Emitter) completeToolCall(ctx context.Context, id string, step int, ev runtime.StepCompleted) events.ToolCallCompletePayload {
	payload := events.ToolCallCompletePayload{
		ID:             id,
		Step:           step,
		Agent:          ev.Agent,
		Duration:       ev.Duration,
		Query:          ev.Query,
		Response:       ev.Response,
		Error:          ev.Err,
		Visualizations: ev.Visualizations,
		SubSteps:       ev.SubSteps,
	}

	def, ok := e.invoker.Match(ev.Agent)
	if !ok || ev.Err != "" {
		return payload
	}
	payload.IsAction = true
	payload.Action = map[string]any{"name": def.Name}
	result, err := e.invoker.Invoke(ctx, def, ev.Query)
	if err != nil {
		e.logger.Error("Action dispatch failed", "action", def.Name, "error", err)
		payload.Error = fmt.Sprintf("action %s failed: %v", def.Name, err)
		return payload
	}
	if result.Response != "" {
		payload.Action["response"] = result.Response
	}
	return payload
}

func (e *Emitter) send(ctx context.Context, out chan<- events.Payload, p events.Payload) {
	select {
	case out <- p:
	case <-ctx.Done():
	}
}
