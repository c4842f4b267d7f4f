package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	echo "github.com/labstack/echo/v5"

	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/pkg/models"
)

// maxInputTextSize bounds the alert/query text accepted on session creation
// and follow-up messages.
const maxInputTextSize = 256 * 1024

// createSessionHandler handles POST /api/v1/sessions.
// Creates a session in "pending" status and returns immediately with
// session_id; a worker claims and runs the investigation in the background.
func (s *Server) createSessionHandler(c *echo.Context) error {
	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Scenario == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "scenario field is required")
	}
	if req.InputText == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "input_text field is required")
	}
	if len(req.InputText) > maxInputTextSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("input_text exceeds maximum size of %d bytes", maxInputTextSize))
	}

	sessionID, err := s.manager.Start(c.Request().Context(), req.Scenario, req.InputText)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusAccepted, &CreateSessionResponse{
		SessionID: sessionID,
		Status:    "queued",
	})
}

// sendMessageHandler handles POST /api/v1/sessions/:id/message.
// Queues a follow-up run on an existing session; 409 when a run is already
// in progress.
func (s *Server) sendMessageHandler(c *echo.Context) error {
	sessionID := c.Param("id")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session id is required")
	}

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text field is required")
	}
	if len(req.Text) > maxInputTextSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("text exceeds maximum size of %d bytes", maxInputTextSize))
	}

	if err := s.manager.Continue(c.Request().Context(), sessionID, req.Text); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusAccepted, map[string]string{
		"session_id": sessionID,
		"status":     "queued",
	})
}

// getSessionHandler handles GET /api/v1/sessions/:id.
// Returns the full persisted record including the event log.
func (s *Server) getSessionHandler(c *echo.Context) error {
	sessionID := c.Param("id")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session id is required")
	}

	detail, err := s.manager.Get(c.Request().Context(), sessionID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, detail)
}

// listSessionsHandler handles GET /api/v1/sessions.
func (s *Server) listSessionsHandler(c *echo.Context) error {
	filters := models.SessionFilters{
		Scenario: c.QueryParam("scenario"),
	}

	if v := c.QueryParam("status"); v != "" {
		for _, st := range strings.Split(v, ",") {
			if err := investigationsession.StatusValidator(investigationsession.Status(st)); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid status: "+st)
			}
		}
		filters.Status = v
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 500 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit: must be 1-500")
		}
		filters.Limit = n
	}
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid offset: must be >= 0")
		}
		filters.Offset = n
	}

	result, err := s.manager.List(c.Request().Context(), filters)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, result)
}

// cancelSessionHandler handles POST /api/v1/sessions/:id/cancel.
// The response is a synchronous acknowledgement; the cancellation's
// completion is observed as a later status/terminal event on the stream.
func (s *Server) cancelSessionHandler(c *echo.Context) error {
	sessionID := c.Param("id")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session id is required")
	}

	if err := s.manager.Cancel(c.Request().Context(), sessionID); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, &CancelResponse{
		SessionID: sessionID,
		Message:   "cancellation requested",
	})
}

// deleteSessionHandler handles DELETE /api/v1/sessions/:id.
func (s *Server) deleteSessionHandler(c *echo.Context) error {
	sessionID := c.Param("id")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session id is required")
	}

	if err := s.manager.Delete(c.Request().Context(), sessionID); err != nil {
		return mapServiceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
