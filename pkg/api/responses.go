package api

// CreateSessionResponse is returned by POST /api/v1/sessions.
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

// CancelResponse is returned by POST /api/v1/sessions/:id/cancel.
type CancelResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// HealthCheck is a single component's health entry.
type HealthCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string                 `json:"status"`
	Version string                 `json:"version"`
	Checks  map[string]HealthCheck `json:"checks"`
}
