package queue

import (
	"context"
	"log/slog"

	"github.com/sentientmobilefurniture/faultline/ent"
	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/pkg/config"
	"github.com/sentientmobilefurniture/faultline/pkg/emitter"
	"github.com/sentientmobilefurniture/faultline/pkg/events"
	"github.com/sentientmobilefurniture/faultline/pkg/models"
	"github.com/sentientmobilefurniture/faultline/pkg/runtime"
	"github.com/sentientmobilefurniture/faultline/pkg/services"
)

// Executor drives one session run: it feeds the pending input to the
// emitter, appends every canonical event to the session's log in arrival
// order (which also publishes it for live delivery), and keeps the derived
// cache fields in sync with what the log would replay to.
type Executor struct {
	emitter        *emitter.Emitter
	scenarios      *config.ScenarioRegistry
	sessionService *services.SessionService
	publisher      *events.Publisher
}

// NewExecutor creates an executor.
func NewExecutor(em *emitter.Emitter, scenarios *config.ScenarioRegistry, sessionService *services.SessionService, publisher *events.Publisher) *Executor {
	return &Executor{
		emitter:        em,
		scenarios:      scenarios,
		sessionService: sessionService,
		publisher:      publisher,
	}
}

// Execute runs the session's pending input to a terminal state.
func (e *Executor) Execute(ctx context.Context, session *ent.InvestigationSession, cancel *emitter.CancelToken) *ExecutionResult {
	log := slog.With("session_id", session.ID, "scenario", session.Scenario)

	in := runtime.RunInput{InputText: session.PendingInput}
	if session.ThreadID != nil {
		in.ThreadID = *session.ThreadID
	}
	if scenario, ok := e.scenarios.Get(session.Scenario); ok {
		in.Dataset = scenario.Dataset
	} else {
		log.Warn("Unknown scenario, running without dataset routing")
	}

	result := &ExecutionResult{Status: investigationsession.StatusCompleted}
	var st runState

	for payload := range e.emitter.Run(ctx, in, cancel) {
		if _, err := e.publisher.Append(ctx, session.ID, events.New(payload)); err != nil {
			// Losing the log is fatal for the run: replay equivalence
			// cannot hold if events are missing.
			log.Error("Failed to append event", "event", payload.EventType(), "error", err)
			result.Status = investigationsession.StatusFailed
			result.ErrorDetail = "event log write failed: " + err.Error()
			return result
		}

		e.applyDerived(ctx, session.ID, payload, result, &st, log)
	}

	if cancel.Cancelled() && result.Status == investigationsession.StatusCompleted && result.Meta == nil {
		result.Status = investigationsession.StatusCancelled
	}
	return result
}

// runState tracks derived-cache bookkeeping across one Execute call.
// stepsThisRun counts summaries appended since the current run.start so that
// a retry can drop exactly the superseded ones.
type runState struct {
	runStarted   bool
	stepsThisRun int
}

// applyDerived maps one event onto the session's derived cache fields.
// Only events that change derived state touch the database; the log write
// already happened.
func (e *Executor) applyDerived(ctx context.Context, sessionID string, payload events.Payload, result *ExecutionResult, st *runState, log *slog.Logger) {
	switch p := payload.(type) {
	case events.SessionCreatedPayload:
		if err := e.sessionService.SetThreadID(ctx, sessionID, p.ThreadID); err != nil {
			log.Error("Failed to store thread id", "error", err)
		}

	case events.RunStartPayload:
		if !st.runStarted {
			st.runStarted = true
			// A starting run consumes the pending input and clears any
			// error detail left by the previous run.
			if err := e.sessionService.ClearRunState(ctx, sessionID); err != nil {
				log.Warn("Failed to clear run state", "error", err)
			}
			return
		}
		// A second run.start within one execution is a retry: replay
		// discards the failed attempt's tool calls, so the steps cache
		// drops the matching summaries.
		if st.stepsThisRun > 0 {
			if err := e.sessionService.TrimStepSummaries(ctx, sessionID, st.stepsThisRun); err != nil {
				log.Error("Failed to trim superseded step summaries", "error", err)
			}
			st.stepsThisRun = 0
		}

	case events.ToolCallCompletePayload:
		st.stepsThisRun++
		step := map[string]any{
			"id":       p.ID,
			"step":     p.Step,
			"agent":    p.Agent,
			"query":    p.Query,
			"duration": p.Duration,
		}
		if p.Error != "" {
			step["error"] = p.Error
		}
		if p.IsAction {
			step["is_action"] = true
			step["action"] = p.Action
		}
		if err := e.sessionService.AppendStepSummary(ctx, sessionID, step); err != nil {
			log.Error("Failed to append step summary", "error", err)
		}

	case events.MessageCompletePayload:
		if err := e.sessionService.SetDiagnosis(ctx, sessionID, p.Text); err != nil {
			log.Error("Failed to store diagnosis", "error", err)
		}

	case events.RunCompletePayload:
		result.Status = investigationsession.StatusCompleted
		result.Meta = &models.RunMeta{Steps: p.Steps, Tokens: p.Tokens, Time: p.Time}

	case events.ErrorPayload:
		result.Status = investigationsession.StatusFailed
		result.ErrorDetail = p.Message

	case events.StatusPayload:
		if p.Message == "cancelling" {
			result.Status = investigationsession.StatusCancelled
		}
	}
}
