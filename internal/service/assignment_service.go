package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/pkg/apperrors"
)

// AssignmentService drives the request state machine. Each transition is a
// single conditional update in the repository; many engineers may observe the
// same waiting queue concurrently, and the database guard guarantees each
// request is claimed and completed exactly once, across process instances.
type AssignmentService struct {
	requests   repository.RequestRepository
	dispatcher events.Dispatcher
}

// NewAssignmentService creates the service.
func NewAssignmentService(requests repository.RequestRepository, dispatcher events.Dispatcher) *AssignmentService {
	return &AssignmentService{requests: requests, dispatcher: dispatcher}
}

// Claim binds the engineer to a WAITING request and moves it to IN_PROGRESS.
// When the guard misses (already claimed, or the request does not exist) the
// result is a Conflict; a follow-up read fills in details for messaging.
func (s *AssignmentService) Claim(ctx context.Context, requestID, engineerID int64) (*domain.Request, error) {
	request, err := s.requests.Claim(ctx, requestID, engineerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.conflict(ctx, requestID, "request is not waiting")
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventRequestClaimed,
		RequestID: request.ID,
		Actor:     events.Actor{UserID: engineerID, Role: domain.RoleEngineer},
		Payload: events.RequestClaimedPayload{
			RequesterID: request.RequesterID,
			EngineerID:  engineerID,
			AcceptedAt:  request.AcceptedAt,
		},
	})
	return request, nil
}

// Complete archives an IN_PROGRESS request held by the calling engineer.
// Completion and archival collapse into one transition: completed_at and
// archived_at are set together and the row lands in ARCHIVED.
func (s *AssignmentService) Complete(ctx context.Context, requestID, engineerID int64) (*domain.Request, error) {
	request, err := s.requests.Complete(ctx, requestID, engineerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.conflict(ctx, requestID, "request is not in progress for this engineer")
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventRequestCompleted,
		RequestID: request.ID,
		Actor:     events.Actor{UserID: engineerID, Role: domain.RoleEngineer},
		Payload: events.RequestCompletedPayload{
			RequesterID: request.RequesterID,
			EngineerID:  engineerID,
			CompletedAt: request.CompletedAt,
		},
	})
	return request, nil
}

// Cancel withdraws the requester's own WAITING request.
func (s *AssignmentService) Cancel(ctx context.Context, requestID, requesterID int64) (*domain.Request, error) {
	request, err := s.requests.Cancel(ctx, requestID, requesterID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.conflict(ctx, requestID, "request cannot be canceled")
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventRequestCanceled,
		RequestID: request.ID,
		Actor:     events.Actor{UserID: requesterID, Role: domain.RoleClient},
		Payload:   events.RequestCanceledPayload{RequesterID: request.RequesterID},
	})
	return request, nil
}

// conflict re-reads the request so the Conflict carries the current state.
// The diagnosis stays informational: all guard misses are one Conflict kind.
func (s *AssignmentService) conflict(ctx context.Context, requestID int64, message string) error {
	details := map[string]any{"request_id": requestID}
	current, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return apperrors.NewConflict(message, details)
	}
	details["status"] = current.Status
	if current.EngineerID != nil {
		details["engineer_id"] = *current.EngineerID
	}
	return apperrors.NewConflict(message, details)
}

func (s *AssignmentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
