package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	echo "github.com/labstack/echo/v5"

	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/pkg/events"
	"github.com/sentientmobilefurniture/faultline/pkg/services"
	"github.com/sentientmobilefurniture/faultline/pkg/sse"
)

// keepAliveInterval is how often an SSE comment is written on an otherwise
// idle stream so intermediaries don't drop the connection.
const keepAliveInterval = 15 * time.Second

// notifyEnvelope is the routing view of one NOTIFY payload: the fields the
// publisher merges in for delivery, plus the status message for terminal
// detection. Truncated envelopes carry routing fields only; the full event
// is refetched from the log by offset.
type notifyEnvelope struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Offset    int    `json:"offset"`
	Truncated bool   `json:"truncated"`
	Message   string `json:"message"`
}

// streamSessionHandler handles GET /api/v1/sessions/:id/stream?since=N.
//
// Subscribes to the session's broker channel BEFORE replaying the persisted
// log, so no event appended in the replay/live gap is lost; events already
// replayed are suppressed by offset when they arrive again live. Each frame
// is flushed as soon as it is written. The stream ends with a `done` frame
// once the run reaches a terminal event (or immediately after replay when
// the session is not in progress).
func (s *Server) streamSessionHandler(c *echo.Context) error {
	sessionID := c.Param("id")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session id is required")
	}

	since := 0
	if v := c.QueryParam("since"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid since: must be a non-negative integer")
		}
		since = n
	}

	ctx := c.Request().Context()
	session, err := s.manager.GetSession(ctx, sessionID)
	if err != nil {
		return mapServiceError(err)
	}
	live := session.Status == investigationsession.StatusPending ||
		session.Status == investigationsession.StatusInProgress

	// Subscribe before replay. For terminal sessions the subscription is
	// unused but harmless; it is closed on return either way.
	var sub *events.Subscription
	if live {
		sub, err = s.broker.Subscribe(ctx, events.SessionChannel(sessionID))
		if err != nil {
			slog.Error("Stream subscription failed", "session_id", sessionID, "error", err)
			return echo.NewHTTPError(http.StatusServiceUnavailable, "event stream unavailable")
		}
		defer sub.Close()
	}

	w, err := echo.UnwrapResponse(c.Response())
	if err != nil {
		return err
	}
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	// Replay the persisted log from the requested offset. replayTail tracks
	// whether the final replayed event already ended the run.
	lastSent := since - 1
	replayTail := false
	stored, err := s.events.GetEventsSince(ctx, sessionID, since, 0)
	if err != nil {
		slog.Error("Stream replay query failed", "session_id", sessionID, "error", err)
		return nil
	}
	for _, evt := range stored {
		data, err := storedFrameData(evt.EventType, evt.Payload, evt.Offset)
		if err != nil {
			slog.Warn("Skipping unencodable stored event",
				"session_id", sessionID, "offset", evt.Offset, "error", err)
			continue
		}
		if err := writeFrame(w, evt.EventType, data); err != nil {
			return nil
		}
		lastSent = evt.Offset
		replayTail = isRunTerminal(evt.EventType, payloadMessage(evt.Payload))
	}

	// The run may have finished between the status check and the replay; a
	// fresh status read closes that gap instead of waiting on a quiet
	// subscription forever.
	refreshedStatus := session.Status
	if live {
		if refreshed, err := s.manager.GetSession(ctx, sessionID); err == nil {
			refreshedStatus = refreshed.Status
			live = refreshed.Status == investigationsession.StatusPending ||
				refreshed.Status == investigationsession.StatusInProgress
		}
	}
	// The terminal event lands in the log before the status row commits. If
	// the replay already ended on it while the status still reads
	// in_progress, the run is over; waiting on the subscription would dedup
	// the terminal notification and hang the stream. A pending status stays
	// live: a queued follow-up run's events are still coming.
	if live && replayTail && refreshedStatus == investigationsession.StatusInProgress {
		live = false
	}
	if !live {
		// Forward anything the subscription buffered during replay before
		// closing out.
		if sub != nil {
			s.drainBuffered(ctx, w, sub, &lastSent, sessionID)
		}
		_ = writeFrame(w, events.TypeDone, []byte("{}"))
		return nil
	}

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-keepAlive.C:
			if _, err := w.Write([]byte(": keep-alive\n\n")); err != nil {
				return nil
			}
			w.Flush()
		case n, ok := <-sub.C:
			if !ok {
				// Lagged out of the broker; the client reconnects with since.
				return nil
			}
			var env notifyEnvelope
			if err := json.Unmarshal(n.Payload, &env); err != nil {
				slog.Warn("Dropping malformed notification",
					"session_id", sessionID, "error", err)
				continue
			}
			if env.Offset <= lastSent {
				continue // already delivered during replay
			}

			data := n.Payload
			if env.Truncated {
				data, err = s.refetchEvent(ctx, sessionID, env.Offset)
				if err != nil {
					slog.Error("Refetch of oversized event failed",
						"session_id", sessionID, "offset", env.Offset, "error", err)
					continue
				}
			}
			if err := writeFrame(w, env.Type, data); err != nil {
				return nil
			}
			lastSent = env.Offset

			if isRunTerminal(env.Type, env.Message) {
				_ = writeFrame(w, events.TypeDone, []byte("{}"))
				return nil
			}
		}
	}
}

// drainBuffered forwards notifications the subscription captured while the
// replay query ran, without blocking for new ones.
func (s *Server) drainBuffered(ctx context.Context, w *echo.Response, sub *events.Subscription, lastSent *int, sessionID string) {
	for {
		select {
		case n, ok := <-sub.C:
			if !ok {
				return
			}
			var env notifyEnvelope
			if err := json.Unmarshal(n.Payload, &env); err != nil || env.Offset <= *lastSent {
				continue
			}
			data := n.Payload
			if env.Truncated {
				refetched, err := s.refetchEvent(ctx, sessionID, env.Offset)
				if err != nil {
					continue
				}
				data = refetched
			}
			if err := writeFrame(w, env.Type, data); err != nil {
				return
			}
			*lastSent = env.Offset
		default:
			return
		}
	}
}

// writeFrame writes one SSE frame and flushes it immediately.
func writeFrame(w *echo.Response, eventType string, data []byte) error {
	frame := sse.Frame{Event: eventType, Data: string(data)}
	if _, err := w.Write([]byte(frame.Encode())); err != nil {
		return err
	}
	w.Flush()
	return nil
}

// storedFrameData renders a persisted log row as SSE frame data, with the
// offset merged in so reconnecting clients can dedup across the seam.
func storedFrameData(eventType string, payload map[string]any, offset int) ([]byte, error) {
	m := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		m[k] = v
	}
	m["type"] = eventType
	m["offset"] = offset
	return json.Marshal(m)
}

// refetchEvent loads one event from the log by offset, for notifications too
// large for the NOTIFY payload limit.
func (s *Server) refetchEvent(ctx context.Context, sessionID string, offset int) ([]byte, error) {
	evts, err := s.events.GetEventsSince(ctx, sessionID, offset, 1)
	if err != nil {
		return nil, err
	}
	if len(evts) == 0 || evts[0].Offset != offset {
		return nil, services.ErrNotFound
	}
	return storedFrameData(evts[0].EventType, evts[0].Payload, offset)
}

// payloadMessage extracts the status message field from a stored payload.
func payloadMessage(payload map[string]any) string {
	msg, _ := payload["message"].(string)
	return msg
}

// isRunTerminal reports whether an event ends the current run: successful
// completion, terminal failure, or the cancellation acknowledgement.
func isRunTerminal(eventType, statusMsg string) bool {
	switch eventType {
	case events.TypeRunComplete, events.TypeError:
		return true
	case events.TypeStatus:
		return statusMsg == "cancelling"
	default:
		return false
	}
}
