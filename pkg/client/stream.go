package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/sentientmobilefurniture/faultline/pkg/conversation"
	"github.com/sentientmobilefurniture/faultline/pkg/events"
	"github.com/sentientmobilefurniture/faultline/pkg/sse"
)

// StreamHandler receives each decoded event in arrival order. Returning an
// error stops the stream and is surfaced by Stream.
type StreamHandler func(ev events.Event) error

// Stream consumes the session's SSE stream from the given offset, invoking
// fn per event. It returns nil when the server ends the stream with done,
// and the underlying error on transport failure — callers reconnect by
// calling Stream again with since set to one past the last offset seen.
func (c *Client) Stream(ctx context.Context, sessionID string, since int, fn StreamHandler) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+streamPath(sessionID, since), nil)
	if err != nil {
		return fmt.Errorf("building stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("opening stream: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}

	parser := sse.NewParser()
	buf := make([]byte, 4096)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			frames, err := parser.Feed(buf[:n])
			if err != nil {
				return fmt.Errorf("parsing stream: %w", err)
			}
			for _, frame := range frames {
				ev, err := events.Decode(frame.Event, []byte(frame.Data))
				if err != nil {
					slog.Warn("Skipping undecodable stream event", "event", frame.Event, "error", err)
					continue
				}
				if err := fn(ev); err != nil {
					return err
				}
				if ev.Type() == events.TypeDone {
					return nil
				}
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("reading stream: %w", readErr)
		}
	}
}

// Follow streams a session into a live Conversation, resuming from lastSeen
// (the highest offset already applied; -1 for none). It reduces every event
// through the conversation state machine and returns the final state when
// the stream ends. Duplicate events across a reconnect seam are dropped by
// offset.
func (c *Client) Follow(ctx context.Context, sessionID string, conv *conversation.Conversation, lastSeen int) (int, error) {
	err := c.Stream(ctx, sessionID, lastSeen+1, func(ev events.Event) error {
		if ev.Offset >= 0 && ev.Offset <= lastSeen {
			return nil
		}
		if ev.Offset >= 0 {
			lastSeen = ev.Offset
		}
		conversation.Apply(conv, ev.Payload, true)
		return nil
	})
	return lastSeen, err
}

// Replay fetches the persisted event log and folds it into a Conversation
// offline, without opening a stream.
func (c *Client) Replay(ctx context.Context, sessionID string) (*conversation.Conversation, error) {
	detail, err := c.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	log := make([]events.Event, 0, len(detail.EventLog))
	for _, entry := range detail.EventLog {
		ev, err := events.DecodeStored(entry.EventType, entry.Payload, entry.Offset)
		if err != nil {
			slog.Warn("Skipping undecodable log entry", "event", entry.EventType, "offset", entry.Offset, "error", err)
			continue
		}
		log = append(log, ev)
	}
	return conversation.Replay(detail.ID, detail.AlertText, log), nil
}
