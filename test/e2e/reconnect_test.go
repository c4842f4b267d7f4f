package e2e

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/pkg/conversation"
	"github.com/sentientmobilefurniture/faultline/pkg/events"
	"github.com/sentientmobilefurniture/faultline/pkg/runtime"
)

var errStopStream = errors.New("stop stream")

// TestReconnectResumesWithoutLossOrDuplication drops the stream mid-run and
// reconnects with since set past the last applied offset. The resumed
// conversation must equal a fresh offline replay: nothing lost at the seam,
// nothing applied twice.
func TestReconnectResumesWithoutLossOrDuplication(t *testing.T) {
	rt := runtime.NewScriptedRuntime(runtime.SuccessScript("thread-rc", "Resolver cache poisoned by stale upstream."))
	rt.Delay = 20 * time.Millisecond
	app := NewTestApp(t, WithRuntime(rt))
	ctx := context.Background()

	sessionID, err := app.Client.CreateSession(ctx, "network-triage", "DNS resolution failures in us-east")
	require.NoError(t, err)

	conv := conversation.New(sessionID)
	lastSeen := -1

	// First connection: bail out as soon as the run is visibly mid-flight.
	streamCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	err = app.Client.Stream(streamCtx, sessionID, 0, func(ev events.Event) error {
		if ev.Offset >= 0 {
			lastSeen = ev.Offset
		}
		conversation.Apply(conv, ev.Payload, true)
		if ev.Type() == events.TypeToolCallComplete {
			return errStopStream
		}
		return nil
	})
	require.ErrorIs(t, err, errStopStream)
	require.GreaterOrEqual(t, lastSeen, 0)
	require.False(t, conv.Closed)

	// Second connection resumes from the seam and runs to done.
	_, err = app.Client.Follow(streamCtx, sessionID, conv, lastSeen)
	require.NoError(t, err)
	require.True(t, conv.Closed)
	app.waitForStatus(t, sessionID, investigationsession.StatusCompleted, 10*time.Second)

	replayed, err := app.Client.Replay(ctx, sessionID)
	require.NoError(t, err)
	conv.Streaming = false
	conv.Closed = false
	require.Equal(t, replayed, conv)
}
