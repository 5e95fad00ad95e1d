package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events must implement.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	AggregateType() string
	TenantID() string
	OccurredAt() time.Time
}

// BaseEvent provides a default implementation of DomainEvent. Concrete events
// embed it and add their own payload fields.
type BaseEvent struct {
	ID         string    `json:"event_id"`
	Type       string    `json:"event_type"`
	Aggregate  string    `json:"aggregate_id"`
	AggType    string    `json:"aggregate_type"`
	Tenant     string    `json:"tenant_id"`
	OccurredTS time.Time `json:"occurred_at"`
}

// NewBaseEvent creates a BaseEvent with a generated event ID and the current time.
func NewBaseEvent(eventType, aggregateID, aggregateType, tenantID string) BaseEvent {
	return BaseEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Aggregate:  aggregateID,
		AggType:    aggregateType,
		Tenant:     tenantID,
		OccurredTS: time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) AggregateID() string   { return e.Aggregate }
func (e BaseEvent) AggregateType() string { return e.AggType }
func (e BaseEvent) TenantID() string      { return e.Tenant }
func (e BaseEvent) OccurredAt() time.Time { return e.OccurredTS }
