package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestCreated   EventType = "request_created"
	EventRequestClaimed   EventType = "request_claimed"
	EventRequestCompleted EventType = "request_completed"
	EventRequestCanceled  EventType = "request_canceled"
	EventUserRoleChanged  EventType = "user_role_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID int64           `json:"user_id"`
	Role   domain.UserRole `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID int64       `json:"request_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	RequesterID int64  `json:"requester_id"`
	Building    string `json:"building"`
	Room        string `json:"room"`
	Description string `json:"description"`
}

// RequestClaimedPayload payload.
type RequestClaimedPayload struct {
	RequesterID int64      `json:"requester_id"`
	EngineerID  int64      `json:"engineer_id"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
}

// RequestCompletedPayload payload.
type RequestCompletedPayload struct {
	RequesterID int64      `json:"requester_id"`
	EngineerID  int64      `json:"engineer_id"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// RequestCanceledPayload payload.
type RequestCanceledPayload struct {
	RequesterID int64 `json:"requester_id"`
}

// UserRoleChangedPayload payload.
type UserRoleChangedPayload struct {
	UserID  int64           `json:"user_id"`
	NewRole domain.UserRole `json:"new_role"`
}
