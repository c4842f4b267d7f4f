package conversation

import (
	"github.com/sentientmobilefurniture/faultline/pkg/events"
)

// Apply folds one canonical event into the conversation. The mapping from
// event type to transition is identical for live dispatch and replay; live
// additionally maintains the transient Streaming flag. Apply is a pure
// state transition with no I/O, so replaying a persisted log through it
// reproduces exactly the state a live consumer built.
func Apply(c *Conversation, p events.Payload, live bool) {
	switch p := p.(type) {
	case events.SessionCreatedPayload:
		c.ThreadID = p.ThreadID

	case events.RunStartPayload:
		if open := c.currentAssistant(); open != nil && !terminal(open) {
			// A retried run re-enters run.start on the same turn: the
			// assistant message is reset rather than duplicated, and no
			// second user message is added.
			open.ToolCalls = nil
			open.StreamBuf = ""
			return
		}
		c.Messages = append(c.Messages,
			&Message{Kind: KindUser, Text: p.InputText, Status: MessageDone},
			&Message{Kind: KindAssistant, Status: MessageStreaming},
		)

	case events.ToolCallStartPayload:
		m := c.ensureAssistant()
		m.ToolCalls = append(m.ToolCalls, &ToolCall{
			ID:        p.ID,
			Step:      p.Step,
			Agent:     p.Agent,
			Status:    ToolCallRunning,
			Query:     p.Query,
			Reasoning: p.Reasoning,
		})

	case events.ToolCallCompletePayload:
		m := c.ensureAssistant()
		tc := m.findToolCall(p.ID)
		if tc == nil {
			tc = &ToolCall{ID: p.ID, Step: p.Step, Agent: p.Agent}
			m.ToolCalls = append(m.ToolCalls, tc)
		}
		tc.Status = ToolCallComplete
		if p.Error != "" {
			tc.Status = ToolCallError
		}
		tc.Query = p.Query
		tc.Response = p.Response
		tc.Duration = p.Duration
		tc.Error = p.Error
		tc.Visualizations = p.Visualizations
		tc.SubSteps = p.SubSteps
		tc.IsAction = p.IsAction
		tc.Action = p.Action

	case events.MessageStartPayload:
		m := c.ensureAssistant()
		m.StreamBuf = ""
		if live {
			c.Streaming = true
		}

	case events.MessageDeltaPayload:
		m := c.ensureAssistant()
		m.StreamBuf += p.Text

	case events.MessageCompletePayload:
		m := c.ensureAssistant()
		m.Text = p.Text
		m.StreamBuf = ""
		if live {
			c.Streaming = false
		}

	case events.RunCompletePayload:
		m := c.ensureAssistant()
		m.Status = MessageDone
		m.Meta = &RunMeta{Steps: p.Steps, Tokens: p.Tokens, Time: p.Time}

	case events.ErrorPayload:
		m := c.ensureAssistant()
		m.Status = MessageErrored
		m.Error = p.Message
		if live {
			c.Streaming = false
		}

	case events.StatusPayload:
		c.StatusLine = p.Message

	case events.DonePayload:
		c.Closed = true
	}
}

// ensureAssistant returns the open assistant turn, creating one when the
// log begins mid-run (a reconnect with since can start at any offset).
func (c *Conversation) ensureAssistant() *Message {
	if m := c.currentAssistant(); m != nil {
		return m
	}
	m := &Message{Kind: KindAssistant, Status: MessageStreaming}
	c.Messages = append(c.Messages, m)
	return m
}

func terminal(m *Message) bool {
	return m.Status == MessageDone || m.Status == MessageErrored
}

// Replay folds a persisted event log through the reducer from the empty
// state. creationInput is the session's original alert text: when the log
// carries no run.start (a run that failed before starting), the first user
// message is synthesized from it so the turn is still visible.
func Replay(sessionID, creationInput string, log []events.Event) *Conversation {
	c := New(sessionID)
	for _, ev := range log {
		Apply(c, ev.Payload, false)
	}
	if creationInput != "" && !hasUserMessage(c) {
		c.Messages = append([]*Message{{Kind: KindUser, Text: creationInput, Status: MessageDone}}, c.Messages...)
	}
	return c
}

func hasUserMessage(c *Conversation) bool {
	for _, m := range c.Messages {
		if m.Kind == KindUser {
			return true
		}
	}
	return false
}
