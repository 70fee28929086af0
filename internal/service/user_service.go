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

// UserService owns the user directory: idempotent registration on first
// contact, administrative role changes and the paginated user listing.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, dispatcher: dispatcher}
}

// UserIdentity carries the platform-supplied identity of a caller.
type UserIdentity struct {
	ID        int64
	Username  *string
	FirstName *string
	LastName  *string
}

// GetOrCreate registers the user on first contact with default role CLIENT,
// or refreshes the stored name fields when they changed. Identical repeat
// calls produce no write. Returns the user and whether it was created.
func (s *UserService) GetOrCreate(ctx context.Context, identity UserIdentity) (*domain.User, bool, error) {
	user, err := s.users.GetByID(ctx, identity.ID)
	if err == nil {
		changed := false
		if !eqStrPtr(user.Username, identity.Username) {
			user.Username = identity.Username
			changed = true
		}
		if !eqStrPtr(user.FirstName, identity.FirstName) {
			user.FirstName = identity.FirstName
			changed = true
		}
		if !eqStrPtr(user.LastName, identity.LastName) {
			user.LastName = identity.LastName
			changed = true
		}
		if changed {
			if err := s.users.Update(ctx, user); err != nil {
				return nil, false, apperrors.MapError(err)
			}
		}
		return user, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, apperrors.MapError(err)
	}

	user = &domain.User{
		ID:        identity.ID,
		Username:  identity.Username,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Role:      domain.RoleClient,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, false, apperrors.MapError(err)
	}
	return user, true, nil
}

// GetUser fetches a user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// SetRole assigns a role unconditionally. Role changes are administrative
// writes with a single serial actor, so no conditional guard is needed.
func (s *UserService) SetRole(ctx context.Context, id int64, role domain.UserRole) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, apperrors.NewInvalidArgument("unknown role", map[string]any{"role": role})
	}
	user, err := s.users.UpdateRole(ctx, id, role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:  events.EventUserRoleChanged,
		Actor: events.Actor{UserID: user.ID, Role: user.Role},
		Payload: events.UserRoleChangedPayload{
			UserID:  user.ID,
			NewRole: user.Role,
		},
	})
	return user, nil
}

// ListUsers returns a page of users ordered by id, with the total count.
func (s *UserService) ListUsers(ctx context.Context, page, pageSize int) ([]domain.User, int, error) {
	limit, offset, err := pageWindow(page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	users, total, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return users, total, nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
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

func eqStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
