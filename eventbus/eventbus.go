package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is the payload envelope published to Kafka.
type Event struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Publisher abstracts event publishing so services can run without a broker
// (nil publisher) and tests can capture emitted events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close()
}

// NewJSONEvent builds an Event with a generated id and JSON-encoded payload.
func NewJSONEvent(kind string, payload any) (Event, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal event payload: %w", err)
	}
	return Event{
		ID:         uuid.New().String(),
		Kind:       kind,
		Payload:    b,
		OccurredAt: time.Now(),
	}, nil
}

// DecodeJSON unmarshals Event.Payload into the given type.
func DecodeJSON[T any](evt Event) (T, error) {
	var out T
	if err := json.Unmarshal(evt.Payload, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("unmarshal event payload: %w", err)
	}
	return out, nil
}
