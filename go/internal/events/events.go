package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// Event types.
const (
	TypePromotionExecuted = "promotion.executed"
)

// Event is a domain fact published after a state change.
type Event struct {
	ID         string
	Type       string
	LeagueID   string
	OccurredAt time.Time
	Payload    any
}

// NewEvent stamps a new event with a fresh id.
func NewEvent(eventType, leagueID string, occurredAt time.Time, payload any) Event {
	return Event{
		ID:         models.NewID(),
		Type:       eventType,
		LeagueID:   leagueID,
		OccurredAt: occurredAt.UTC(),
		Payload:    payload,
	}
}

// Publisher delivers events to subscribers outside the process.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

// Publish implements Publisher.
func (NoopPublisher) Publish(context.Context, Event) error { return nil }

// Close implements Publisher.
func (NoopPublisher) Close() error { return nil }

type envelope struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	LeagueID  string          `json:"leagueId"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// buildMessage encodes event as a NATS message on <prefix>.<type>.
func buildMessage(prefix string, event Event) (*nats.Msg, error) {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	data, err := json.Marshal(envelope{
		EventID:   event.ID,
		EventType: event.Type,
		LeagueID:  event.LeagueID,
		Timestamp: event.OccurredAt,
		Payload:   payload,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}

	return &nats.Msg{
		Subject: fmt.Sprintf("%s.%s", prefix, event.Type),
		Data:    data,
		Header: nats.Header{
			"Event-Type": []string{event.Type},
			"League-ID":  []string{event.LeagueID},
			"Event-ID":   []string{event.ID},
		},
	}, nil
}
