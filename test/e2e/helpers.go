package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sentientmobilefurniture/faultline/ent"
	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/pkg/models"
	"github.com/sentientmobilefurniture/faultline/pkg/runtime"
)

// waitForStatus polls until the session reaches the wanted status, failing
// the test on timeout.
func (app *TestApp) waitForStatus(t *testing.T, sessionID string, want investigationsession.Status, timeout time.Duration) *ent.InvestigationSession {
	t.Helper()
	deadline := time.Now().Add(timeout)
	var last *ent.InvestigationSession
	for time.Now().Before(deadline) {
		session, err := app.Manager.GetSession(context.Background(), sessionID)
		require.NoError(t, err)
		last = session
		if session.Status == want {
			return session
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("session %s never reached status %s (last: %s)", sessionID, want, last.Status)
	return nil
}

// waitForTerminal polls until the session leaves pending/in_progress.
func (app *TestApp) waitForTerminal(t *testing.T, sessionID string, timeout time.Duration) *ent.InvestigationSession {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		session, err := app.Manager.GetSession(context.Background(), sessionID)
		require.NoError(t, err)
		switch session.Status {
		case investigationsession.StatusPending, investigationsession.StatusInProgress:
			time.Sleep(50 * time.Millisecond)
		default:
			return session
		}
	}
	t.Fatalf("session %s never reached a terminal status", sessionID)
	return nil
}

// eventLog fetches the persisted log via the REST API.
func (app *TestApp) eventLog(t *testing.T, sessionID string) []models.LogEntry {
	t.Helper()
	detail, err := app.Client.GetSession(context.Background(), sessionID)
	require.NoError(t, err)
	return detail.EventLog
}

// logTypes projects a log onto its event type names, in order.
func logTypes(log []models.LogEntry) []string {
	types := make([]string, len(log))
	for i, entry := range log {
		types[i] = entry.EventType
	}
	return types
}

// countType counts occurrences of one event type in a log.
func countType(log []models.LogEntry, eventType string) int {
	n := 0
	for _, entry := range log {
		if entry.EventType == eventType {
			n++
		}
	}
	return n
}

// failureScript ends with a recoverable runtime failure instead of a
// completed run.
func failureScript(code string, recoverable bool) []runtime.Event {
	return []runtime.Event{
		runtime.ThreadCreated{ThreadID: "thread-fail"},
		runtime.RunStarted{RunID: "run-fail"},
		runtime.RunFailed{Message: "runtime rejected the run", Code: code, Recoverable: recoverable},
	}
}
