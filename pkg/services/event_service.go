package services

import (
	"context"
	"fmt"

	"github.com/sentientmobilefurniture/faultline/ent"
	"github.com/sentientmobilefurniture/faultline/ent/sessionevent"
	"github.com/sentientmobilefurniture/faultline/pkg/models"
)

// EventService reads a session's append-only event log. Appends go through
// events.Publisher so the INSERT and its NOTIFY share one transaction.
type EventService struct {
	client *ent.Client
}

// NewEventService creates a new EventService.
func NewEventService(client *ent.Client) *EventService {
	return &EventService{client: client}
}

// GetEventsSince retrieves log entries with offset >= since, in log order.
// since=0 returns the full log. limit <= 0 means no limit.
func (s *EventService) GetEventsSince(ctx context.Context, sessionID string, since, limit int) ([]*ent.SessionEvent, error) {
	query := s.client.SessionEvent.Query().
		Where(
			sessionevent.SessionIDEQ(sessionID),
			sessionevent.OffsetGTE(since),
		).
		Order(ent.Asc(sessionevent.FieldOffset))
	if limit > 0 {
		query = query.Limit(limit)
	}

	evts, err := query.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	return evts, nil
}

// GetEventLog returns the full log as detail-endpoint entries.
func (s *EventService) GetEventLog(ctx context.Context, sessionID string) ([]models.LogEntry, error) {
	evts, err := s.GetEventsSince(ctx, sessionID, 0, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]models.LogEntry, len(evts))
	for i, evt := range evts {
		entries[i] = models.LogEntry{
			Offset:    evt.Offset,
			EventType: evt.EventType,
			Payload:   evt.Payload,
		}
	}
	return entries, nil
}

// NextOffset returns the offset the next appended event will receive.
func (s *EventService) NextOffset(ctx context.Context, sessionID string) (int, error) {
	count, err := s.client.SessionEvent.Query().
		Where(sessionevent.SessionIDEQ(sessionID)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}
