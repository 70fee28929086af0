package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/pkg/apperrors"
)

// RequestService owns request intake and the read side: the waiting queue,
// per-engineer and administrative active views, and the archive.
type RequestService struct {
	requests   repository.RequestRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewRequestService constructs the service.
func NewRequestService(requests repository.RequestRepository, users repository.UserRepository, dispatcher events.Dispatcher) *RequestService {
	return &RequestService{requests: requests, users: users, dispatcher: dispatcher}
}

// RequestCreateInput describes request creation payload.
type RequestCreateInput struct {
	FullName     *string
	Building     string
	Room         string
	Description  string
	AssetTag     *string
	ContactPhone *string
}

// Create files a new request in WAITING for the given requester.
func (s *RequestService) Create(ctx context.Context, requesterID int64, input RequestCreateInput) (*domain.Request, error) {
	input.Building = strings.TrimSpace(input.Building)
	input.Room = strings.TrimSpace(input.Room)
	input.Description = strings.TrimSpace(input.Description)
	if input.Building == "" || input.Room == "" || input.Description == "" {
		return nil, apperrors.NewInvalidArgument("building, room and description are required", nil)
	}

	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": requesterID})
		}
		return nil, apperrors.MapError(err)
	}

	request := &domain.Request{
		RequesterID:  requesterID,
		FullName:     input.FullName,
		Building:     input.Building,
		Room:         input.Room,
		Description:  input.Description,
		AssetTag:     input.AssetTag,
		ContactPhone: input.ContactPhone,
		Status:       domain.StatusWaiting,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventRequestCreated,
		RequestID: request.ID,
		Actor:     events.Actor{UserID: requesterID},
		Payload: events.RequestCreatedPayload{
			RequesterID: requesterID,
			Building:    request.Building,
			Room:        request.Room,
			Description: request.Description,
		},
	})
	return request, nil
}

// Get fetches a request with its relationships resolved.
func (s *RequestService) Get(ctx context.Context, id int64) (*domain.Request, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request", map[string]any{"request_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return request, nil
}

// ListWaiting returns every WAITING request, oldest first, so engineers work
// the queue in FIFO order.
func (s *RequestService) ListWaiting(ctx context.Context) ([]domain.Request, error) {
	requests, err := s.requests.ListWaiting(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return requests, nil
}

// ListAssigned returns the engineer's active requests with the total count.
func (s *RequestService) ListAssigned(ctx context.Context, engineerID int64, page, pageSize int, sort repository.SortKey) ([]domain.Request, int, error) {
	limit, offset, err := pageWindow(page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return s.list(ctx, repository.RequestFilter{
		Statuses:    []domain.RequestStatus{domain.StatusInProgress},
		EngineerID:  &engineerID,
		Sort:        sort,
		DefaultSort: repository.SortAcceptedAsc,
		Limit:       limit,
		Offset:      offset,
	})
}

// ListAllInProgress returns every active request regardless of engineer.
func (s *RequestService) ListAllInProgress(ctx context.Context, page, pageSize int, sort repository.SortKey) ([]domain.Request, int, error) {
	limit, offset, err := pageWindow(page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return s.list(ctx, repository.RequestFilter{
		Statuses:    []domain.RequestStatus{domain.StatusInProgress},
		Sort:        sort,
		DefaultSort: repository.SortAcceptedAsc,
		Limit:       limit,
		Offset:      offset,
	})
}

// ListArchived returns archived requests; with engineerID set it is the
// engineer's personal completion history, otherwise the full archive.
func (s *RequestService) ListArchived(ctx context.Context, engineerID *int64, page, pageSize int, sort repository.SortKey) ([]domain.Request, int, error) {
	limit, offset, err := pageWindow(page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return s.list(ctx, repository.RequestFilter{
		Statuses:    []domain.RequestStatus{domain.StatusArchived},
		EngineerID:  engineerID,
		Sort:        sort,
		DefaultSort: repository.SortArchivedDesc,
		Limit:       limit,
		Offset:      offset,
	})
}

// ListMine returns the requester's open requests, newest first. Terminal
// requests are excluded; clients review those through the engineer's hands.
func (s *RequestService) ListMine(ctx context.Context, requesterID int64, page, pageSize int) ([]domain.Request, int, error) {
	limit, offset, err := pageWindow(page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return s.list(ctx, repository.RequestFilter{
		ExcludeStatuses: []domain.RequestStatus{domain.StatusArchived, domain.StatusCanceled},
		RequesterID:     &requesterID,
		Sort:            repository.SortCreatedDesc,
		DefaultSort:     repository.SortCreatedDesc,
		Limit:           limit,
		Offset:          offset,
	})
}

func (s *RequestService) list(ctx context.Context, filter repository.RequestFilter) ([]domain.Request, int, error) {
	requests, total, err := s.requests.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return requests, total, nil
}

func (s *RequestService) publish(ctx context.Context, event events.Event) {
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
