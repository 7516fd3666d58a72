package events

import (
	"time"

	"github.com/spec-kit/request-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestCreated       EventType = "request_created"
	EventRequestUpdated       EventType = "request_updated"
	EventRequestDeleted       EventType = "request_deleted"
	EventRequestStatusChanged EventType = "request_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID int64       `json:"request_id"`
	OwnerID   int64       `json:"owner_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	ServiceType domain.ServiceType     `json:"service_type"`
	Priority    domain.RequestPriority `json:"priority"`
	Status      domain.RequestStatus   `json:"status"`
}

// RequestUpdatedPayload payload.
type RequestUpdatedPayload struct {
	ServiceType domain.ServiceType     `json:"service_type"`
	Priority    domain.RequestPriority `json:"priority"`
}

// RequestDeletedPayload payload.
type RequestDeletedPayload struct {
	Status domain.RequestStatus `json:"status"`
}

// RequestStatusChangedPayload payload.
type RequestStatusChangedPayload struct {
	OldStatus  domain.RequestStatus `json:"old_status"`
	NewStatus  domain.RequestStatus `json:"new_status"`
	AssignedTo *string              `json:"assigned_to,omitempty"`
	Notes      *string              `json:"notes,omitempty"`
}
