package runtime

import (
	"context"
	"sync"
	"time"
)

// ScriptedRuntime replays a fixed event sequence per run. This is intended
// for tests and local development without a hosted runtime; scripts are
// consumed in order, one per Run call, with the last script repeating once
// the queue is exhausted.
type ScriptedRuntime struct {
	mu      sync.Mutex
	scripts [][]Event
	next    int

	// Delay is inserted before each event, letting tests exercise
	// mid-stream cancellation.
	Delay time.Duration

	// RunErr, when set, is returned by Run before any events are emitted.
	RunErr error

	// calls records the inputs of every Run invocation.
	calls []RunInput
}

// NewScriptedRuntime creates a runtime that replays the given scripts.
func NewScriptedRuntime(scripts ...[]Event) *ScriptedRuntime {
	return &ScriptedRuntime{scripts: scripts}
}

// Calls returns a copy of the recorded Run inputs.
func (s *ScriptedRuntime) Calls() []RunInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RunInput, len(s.calls))
	copy(out, s.calls)
	return out
}

// Run replays the next script on a channel, honoring ctx cancellation.
func (s *ScriptedRuntime) Run(ctx context.Context, in RunInput) (<-chan Event, error) {
	s.mu.Lock()
	s.calls = append(s.calls, in)
	if s.RunErr != nil {
		s.mu.Unlock()
		return nil, s.RunErr
	}
	var script []Event
	if len(s.scripts) > 0 {
		idx := s.next
		if idx >= len(s.scripts) {
			idx = len(s.scripts) - 1
		}
		script = s.scripts[idx]
		s.next++
	}
	delay := s.Delay
	s.mu.Unlock()

	out := make(chan Event)
	go func() {
		defer close(out)
		for _, ev := range script {
			if delay > 0 {
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					return
				}
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// SuccessScript builds a minimal happy-path event sequence: one step, a
// streamed answer, and a completed run.
func SuccessScript(threadID, answer string) []Event {
	return []Event{
		ThreadCreated{ThreadID: threadID},
		RunStarted{RunID: "run-1"},
		StepStarted{StepID: "step-1", Agent: "metrics", Query: "error rate by service"},
		StepCompleted{StepID: "step-1", Agent: "metrics", Duration: 0.4, Query: "error rate by service", Response: "checkout 34% 5xx"},
		MessageDelta{Text: answer[:len(answer)/2]},
		MessageDelta{Text: answer[len(answer)/2:]},
		MessageCompleted{Text: answer},
		RunCompleted{Steps: 1, Tokens: 512, Duration: 1.2},
	}
}
