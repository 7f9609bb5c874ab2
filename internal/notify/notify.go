// Package notify broadcasts entity-change events after successful
// mutations so view-layer caches elsewhere can drop stale snapshots.
// Delivery is best-effort: a failed publish never fails the mutation.
package notify

import (
	"context"
	"encoding/json"
	"time"
)

// Entity names carried in change messages, one per storage slot.
const (
	EntityExpenses   = "expenses"
	EntityCategories = "categories"
	EntityBudget     = "budget"
)

type Publisher interface {
	EntityChanged(ctx context.Context, entity string) error
	Close() error
}

// ChangeMessage tells consumers which collection changed and when.
// Consumers re-read through the repositories; the message carries no
// record data on purpose.
type ChangeMessage struct {
	Entity    string    `json:"entity"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeMessage(entity string) *ChangeMessage {
	return &ChangeMessage{Entity: entity, Timestamp: time.Now()}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Noop satisfies Publisher when no broker is configured.
type Noop struct{}

func (Noop) EntityChanged(context.Context, string) error { return nil }
func (Noop) Close() error                                { return nil }
