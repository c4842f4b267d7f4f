package api

// CreateSessionRequest is the HTTP request body for POST /api/v1/sessions.
type CreateSessionRequest struct {
	Scenario  string `json:"scenario"`
	InputText string `json:"input_text"`
}

// SendMessageRequest is the HTTP request body for
// POST /api/v1/sessions/:id/message.
type SendMessageRequest struct {
	Text string `json:"text"`
}
