package e2e

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/pkg/client"
	"github.com/sentientmobilefurniture/faultline/pkg/events"
	"github.com/sentientmobilefurniture/faultline/pkg/runtime"
)

// TestFollowUpConflict exercises the at-most-one-active-run rule over HTTP:
// a follow-up during an active run is rejected with 409, the same follow-up
// after the run completes is accepted and executes as a second run on the
// same thread.
func TestFollowUpConflict(t *testing.T) {
	rt := runtime.NewScriptedRuntime(runtime.SuccessScript("thread-fu", "Edge cache hit rate collapsed."))
	rt.Delay = 150 * time.Millisecond
	app := NewTestApp(t, WithRuntime(rt))
	ctx := context.Background()

	sessionID, err := app.Client.CreateSession(ctx, "network-triage", "cache hit rate dropped to 12%")
	require.NoError(t, err)
	app.waitForStatus(t, sessionID, investigationsession.StatusInProgress, 10*time.Second)

	err = app.Client.SendMessage(ctx, sessionID, "what changed in the last hour?")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)

	app.waitForStatus(t, sessionID, investigationsession.StatusCompleted, 15*time.Second)

	// Same follow-up is accepted once the run is terminal.
	require.NoError(t, app.Client.SendMessage(ctx, sessionID, "what changed in the last hour?"))
	app.waitForStatus(t, sessionID, investigationsession.StatusCompleted, 10*time.Second)

	log := app.eventLog(t, sessionID)
	assert.Equal(t, 2, countType(log, events.TypeRunComplete))
	assert.Equal(t, 1, countType(log, events.TypeSessionCreated))

	// The follow-up run reuses the session's thread.
	calls := rt.Calls()
	require.Len(t, calls, 2)
	assert.Empty(t, calls[0].ThreadID)
	assert.Equal(t, "thread-fu", calls[1].ThreadID)
	assert.Equal(t, "what changed in the last hour?", calls[1].InputText)
}

// TestConcurrentFollowUpsSingleWinner races several simultaneous follow-up
// requests against one terminal session. The conditional terminal-to-pending
// UPDATE serializes them: exactly one is accepted, the rest get 409.
func TestConcurrentFollowUpsSingleWinner(t *testing.T) {
	rt := runtime.NewScriptedRuntime(runtime.SuccessScript("thread-race", "BGP session flap on the edge router."))
	rt.Delay = 100 * time.Millisecond
	app := NewTestApp(t, WithRuntime(rt))
	ctx := context.Background()

	sessionID, err := app.Client.CreateSession(ctx, "network-triage", "intermittent packet loss to eu-west")
	require.NoError(t, err)
	app.waitForStatus(t, sessionID, investigationsession.StatusCompleted, 15*time.Second)

	const contenders = 8
	errs := make([]error, contenders)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = app.Client.SendMessage(ctx, sessionID, "re-check the edge router")
		}(i)
	}
	close(start)
	wg.Wait()

	accepted, conflicted := 0, 0
	for _, err := range errs {
		if err == nil {
			accepted++
			continue
		}
		var apiErr *client.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusConflict, apiErr.StatusCode)
		conflicted++
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, contenders-1, conflicted)

	app.waitForStatus(t, sessionID, investigationsession.StatusCompleted, 15*time.Second)
	log := app.eventLog(t, sessionID)
	assert.Equal(t, 2, countType(log, events.TypeRunComplete))
}
