package domain

import "time"

// RequestStatus enumerates lifecycle states for repair requests.
//
// StatusCompleted is representable for display and history rendering but is
// never durable: completing a request collapses completion and archival into
// a single transition, so a stored row moves IN_PROGRESS -> ARCHIVED.
type RequestStatus string

const (
	StatusWaiting    RequestStatus = "WAITING"
	StatusInProgress RequestStatus = "IN_PROGRESS"
	StatusCompleted  RequestStatus = "COMPLETED"
	StatusArchived   RequestStatus = "ARCHIVED"
	StatusCanceled   RequestStatus = "CANCELED"
)

// Request is the aggregate for a repair request.
type Request struct {
	ID          int64
	RequesterID int64
	EngineerID  *int64

	FullName     *string
	Building     string
	Room         string
	Description  string
	AssetTag     *string
	ContactPhone *string

	Status      RequestStatus
	CreatedAt   time.Time
	AcceptedAt  *time.Time
	CompletedAt *time.Time
	ArchivedAt  *time.Time
	UpdatedAt   time.Time

	// Resolved relationships, populated by the repository on reads.
	Requester *User
	Engineer  *User
}

// Terminal reports whether the status admits no further transitions.
func (s RequestStatus) Terminal() bool {
	return s == StatusArchived || s == StatusCanceled
}

var allowedTransitions = map[RequestStatus][]RequestStatus{
	StatusWaiting:    {StatusInProgress, StatusCanceled},
	StatusInProgress: {StatusCompleted, StatusArchived},
	StatusCompleted:  {StatusArchived},
	StatusArchived:   {},
	StatusCanceled:   {},
}

// CanTransition reports whether current -> next is a legal status move.
func CanTransition(current, next RequestStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
