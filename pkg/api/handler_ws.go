package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	echo "github.com/labstack/echo/v5"

	"github.com/sentientmobilefurniture/faultline/pkg/events"
)

// wsWriteTimeout bounds a single WebSocket send so one stalled client cannot
// pin a pump goroutine.
const wsWriteTimeout = 10 * time.Second

// wsClientMessage is a subscription command from the dashboard.
type wsClientMessage struct {
	Action  string `json:"action"` // "subscribe" | "unsubscribe"
	Channel string `json:"channel"`
}

// wsHandler handles GET /api/v1/ws: a channel-subscription transport over
// the same broker that feeds the SSE stream. Dashboards subscribe to the
// global "sessions" channel for list updates, or to "session:{id}" for one
// session's events.
func (s *Server) wsHandler(c *echo.Context) error {
	opts := &websocket.AcceptOptions{}
	if len(s.cfg.Server.AllowedWSOrigins) > 0 {
		opts.OriginPatterns = s.cfg.Server.AllowedWSOrigins
	} else {
		opts.InsecureSkipVerify = true
	}

	conn, err := websocket.Accept(c.Response(), c.Request(), opts)
	if err != nil {
		return err
	}

	// handleWS blocks until the WebSocket closes.
	s.handleWS(c.Request().Context(), conn)
	return nil
}

// wsConn is one WebSocket client's state: its active broker subscriptions
// and a write lock serializing pump goroutines onto the connection.
type wsConn struct {
	id   string
	conn *websocket.Conn

	writeMu sync.Mutex

	subsMu sync.Mutex
	subs   map[string]*events.Subscription
}

func (s *Server) handleWS(parentCtx context.Context, conn *websocket.Conn) {
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	wc := &wsConn{
		id:   uuid.NewString(),
		conn: conn,
		subs: make(map[string]*events.Subscription),
	}
	defer wc.closeAll()

	wc.send(ctx, map[string]string{
		"type":          "connection.established",
		"connection_id": wc.id,
	})

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}

		var msg wsClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("Invalid WebSocket message", "connection_id", wc.id, "error", err)
			continue
		}

		switch msg.Action {
		case "subscribe":
			s.wsSubscribe(ctx, wc, msg.Channel)
		case "unsubscribe":
			wc.unsubscribe(msg.Channel)
		default:
			wc.send(ctx, map[string]string{
				"type":    "error",
				"message": "unknown action: " + msg.Action,
			})
		}
	}
}

// wsSubscribe attaches the connection to a broker channel and starts a pump
// goroutine forwarding its notifications.
func (s *Server) wsSubscribe(ctx context.Context, wc *wsConn, channel string) {
	if !validWSChannel(channel) {
		wc.send(ctx, map[string]string{
			"type":    "error",
			"message": "invalid channel: " + channel,
		})
		return
	}

	wc.subsMu.Lock()
	if _, exists := wc.subs[channel]; exists {
		wc.subsMu.Unlock()
		return
	}
	sub, err := s.broker.Subscribe(ctx, channel)
	if err != nil {
		wc.subsMu.Unlock()
		slog.Error("WebSocket subscription failed",
			"connection_id", wc.id, "channel", channel, "error", err)
		wc.send(ctx, map[string]string{
			"type":    "error",
			"message": "subscription failed: " + channel,
		})
		return
	}
	wc.subs[channel] = sub
	wc.subsMu.Unlock()

	wc.send(ctx, map[string]string{
		"type":    "subscription.confirmed",
		"channel": channel,
	})

	go func() {
		for n := range sub.C {
			if !wc.sendRaw(ctx, n.Payload) {
				return
			}
		}
	}()
}

func (wc *wsConn) unsubscribe(channel string) {
	wc.subsMu.Lock()
	sub, ok := wc.subs[channel]
	delete(wc.subs, channel)
	wc.subsMu.Unlock()
	if ok {
		sub.Close()
	}
}

func (wc *wsConn) closeAll() {
	wc.subsMu.Lock()
	subs := make([]*events.Subscription, 0, len(wc.subs))
	for _, sub := range wc.subs {
		subs = append(subs, sub)
	}
	wc.subs = make(map[string]*events.Subscription)
	wc.subsMu.Unlock()
	for _, sub := range subs {
		sub.Close()
	}
}

func (wc *wsConn) send(ctx context.Context, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	wc.sendRaw(ctx, data)
}

// sendRaw writes one message; returns false when the connection is gone.
func (wc *wsConn) sendRaw(ctx context.Context, data []byte) bool {
	writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()

	wc.writeMu.Lock()
	defer wc.writeMu.Unlock()
	if err := wc.conn.Write(writeCtx, websocket.MessageText, data); err != nil {
		return false
	}
	return true
}

// validWSChannel restricts subscriptions to the channels the broker serves.
func validWSChannel(channel string) bool {
	if channel == events.GlobalSessionsChannel {
		return true
	}
	return strings.HasPrefix(channel, "session:") && len(channel) > len("session:")
}
