// Package api exposes the HTTP surface: session lifecycle endpoints, the
// per-session SSE event stream, a WebSocket channel transport for the
// dashboard, and health.
package api

import (
	"context"
	"net"
	"net/http"
	"time"

	echo "github.com/labstack/echo/v5"

	"github.com/sentientmobilefurniture/faultline/pkg/config"
	"github.com/sentientmobilefurniture/faultline/pkg/database"
	"github.com/sentientmobilefurniture/faultline/pkg/events"
	"github.com/sentientmobilefurniture/faultline/pkg/manager"
	"github.com/sentientmobilefurniture/faultline/pkg/queue"
	"github.com/sentientmobilefurniture/faultline/pkg/services"
)

// httpReadHeaderTimeout bounds slow-header clients without constraining
// long-lived streaming responses.
const httpReadHeaderTimeout = 10 * time.Second

// Server wires the HTTP handlers to the session manager, the event broker,
// and the worker pool.
type Server struct {
	cfg        *config.Config
	dbClient   *database.Client
	manager    *manager.SessionManager
	events     *services.EventService
	broker     *events.Broker
	workerPool *queue.WorkerPool

	echo       *echo.Echo
	httpServer *http.Server
}

// NewServer creates the API server and registers all routes.
func NewServer(
	cfg *config.Config,
	dbClient *database.Client,
	mgr *manager.SessionManager,
	eventService *services.EventService,
	broker *events.Broker,
	workerPool *queue.WorkerPool,
) *Server {
	s := &Server{
		cfg:        cfg,
		dbClient:   dbClient,
		manager:    mgr,
		events:     eventService,
		broker:     broker,
		workerPool: workerPool,
	}

	e := echo.New()
	e.Use(secureHeaders())

	e.GET("/health", s.healthHandler)

	v1 := e.Group("/api/v1")
	v1.POST("/sessions", s.createSessionHandler)
	v1.GET("/sessions", s.listSessionsHandler)
	v1.GET("/sessions/:id", s.getSessionHandler)
	v1.DELETE("/sessions/:id", s.deleteSessionHandler)
	v1.POST("/sessions/:id/message", s.sendMessageHandler)
	v1.POST("/sessions/:id/cancel", s.cancelSessionHandler)
	v1.GET("/sessions/:id/stream", s.streamSessionHandler)
	v1.GET("/ws", s.wsHandler)

	s.echo = e
	return s
}

// Start listens on addr and serves until Shutdown or a fatal error.
// Blocks; returns http.ErrServerClosed after a clean Shutdown.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.echo,
		// No WriteTimeout: the SSE stream endpoint holds responses open for
		// the duration of a run.
		ReadHeaderTimeout: httpReadHeaderTimeout,
	}
	return s.httpServer.ListenAndServe()
}

// StartWithListener serves on an existing listener. Used by tests that bind
// to an ephemeral port.
func (s *Server) StartWithListener(ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.echo,
		ReadHeaderTimeout: httpReadHeaderTimeout,
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the HTTP server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
