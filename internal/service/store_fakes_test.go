package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// fakeUserStore is an in-memory UserRepository. Writes are counted so tests
// can assert that identical upserts produce no write.
type fakeUserStore struct {
	mu      sync.Mutex
	users   map[int64]domain.User
	creates int
	updates int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]domain.User)}
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := user
	return &copied, nil
}

func (s *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if user.RegisteredAt.IsZero() {
		user.RegisteredAt = time.Now()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) Update(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.updates++
	s.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) UpdateRole(_ context.Context, id int64, role domain.UserRole) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	s.updates++
	user.Role = role
	s.users[id] = user
	copied := user
	return &copied, nil
}

func (s *fakeUserStore) List(_ context.Context, limit, offset int) ([]domain.User, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]domain.User, 0, len(s.users))
	for _, user := range s.users {
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := len(all)
	if offset >= total {
		return []domain.User{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// fakeRequestStore is an in-memory RequestRepository. Claim, Complete and
// Cancel hold the mutex across test-and-set, mirroring the atomicity of the
// conditional UPDATE, and report a guard miss as pgx.ErrNoRows.
type fakeRequestStore struct {
	mu       sync.Mutex
	requests map[int64]domain.Request
	nextID   int64
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{requests: make(map[int64]domain.Request), nextID: 1}
}

func (s *fakeRequestStore) Create(_ context.Context, request *domain.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	request.ID = s.nextID
	s.nextID++
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now
	request.Status = domain.StatusWaiting
	s.requests[request.ID] = *request
	return nil
}

func (s *fakeRequestStore) GetByID(_ context.Context, id int64) (*domain.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := request
	return &copied, nil
}

func (s *fakeRequestStore) Claim(_ context.Context, id, engineerID int64) (*domain.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[id]
	if !ok || request.Status != domain.StatusWaiting {
		return nil, pgx.ErrNoRows
	}
	now := time.Now()
	request.EngineerID = &engineerID
	request.Status = domain.StatusInProgress
	request.AcceptedAt = &now
	request.UpdatedAt = now
	s.requests[id] = request
	copied := request
	return &copied, nil
}

func (s *fakeRequestStore) Complete(_ context.Context, id, engineerID int64) (*domain.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[id]
	if !ok || request.Status != domain.StatusInProgress || request.EngineerID == nil || *request.EngineerID != engineerID {
		return nil, pgx.ErrNoRows
	}
	now := time.Now()
	request.Status = domain.StatusArchived
	request.CompletedAt = &now
	request.ArchivedAt = &now
	request.UpdatedAt = now
	s.requests[id] = request
	copied := request
	return &copied, nil
}

func (s *fakeRequestStore) Cancel(_ context.Context, id, requesterID int64) (*domain.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[id]
	if !ok || request.Status != domain.StatusWaiting || request.RequesterID != requesterID {
		return nil, pgx.ErrNoRows
	}
	now := time.Now()
	request.Status = domain.StatusCanceled
	request.UpdatedAt = now
	s.requests[id] = request
	copied := request
	return &copied, nil
}

func (s *fakeRequestStore) ListWaiting(_ context.Context) ([]domain.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	waiting := []domain.Request{}
	for _, request := range s.requests {
		if request.Status == domain.StatusWaiting {
			waiting = append(waiting, request)
		}
	}
	sort.Slice(waiting, func(i, j int) bool {
		if waiting[i].CreatedAt.Equal(waiting[j].CreatedAt) {
			return waiting[i].ID < waiting[j].ID
		}
		return waiting[i].CreatedAt.Before(waiting[j].CreatedAt)
	})
	return waiting, nil
}

func (s *fakeRequestStore) ListWithFilter(_ context.Context, filter repository.RequestFilter) ([]domain.Request, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []domain.Request{}
	for _, request := range s.requests {
		if len(filter.Statuses) > 0 && !statusIn(request.Status, filter.Statuses) {
			continue
		}
		if len(filter.ExcludeStatuses) > 0 && statusIn(request.Status, filter.ExcludeStatuses) {
			continue
		}
		if filter.RequesterID != nil && request.RequesterID != *filter.RequesterID {
			continue
		}
		if filter.EngineerID != nil && (request.EngineerID == nil || *request.EngineerID != *filter.EngineerID) {
			continue
		}
		matched = append(matched, request)
	}

	sortRequests(matched, filter.Sort, filter.DefaultSort)

	total := len(matched)
	if filter.Offset >= total {
		return []domain.Request{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if filter.Limit <= 0 || end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}

func statusIn(status domain.RequestStatus, set []domain.RequestStatus) bool {
	for _, candidate := range set {
		if candidate == status {
			return true
		}
	}
	return false
}

func sortRequests(items []domain.Request, key, fallback repository.SortKey) {
	if _, ok := map[repository.SortKey]bool{
		repository.SortAcceptedAsc:  true,
		repository.SortCreatedAsc:   true,
		repository.SortCreatedDesc:  true,
		repository.SortArchivedDesc: true,
		repository.SortArchivedAsc:  true,
		repository.SortIDAsc:        true,
		repository.SortIDDesc:       true,
	}[key]; !ok {
		key = fallback
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch key {
		case repository.SortAcceptedAsc:
			return timePtrBefore(a.AcceptedAt, b.AcceptedAt, a.ID < b.ID)
		case repository.SortCreatedAsc:
			return a.CreatedAt.Before(b.CreatedAt)
		case repository.SortCreatedDesc:
			return b.CreatedAt.Before(a.CreatedAt)
		case repository.SortArchivedDesc:
			return timePtrBefore(b.ArchivedAt, a.ArchivedAt, b.ID < a.ID)
		case repository.SortArchivedAsc:
			return timePtrBefore(a.ArchivedAt, b.ArchivedAt, a.ID < b.ID)
		case repository.SortIDDesc:
			return a.ID > b.ID
		default:
			return a.ID < b.ID
		}
	})
}

func timePtrBefore(a, b *time.Time, tie bool) bool {
	if a == nil || b == nil {
		return tie
	}
	if a.Equal(*b) {
		return tie
	}
	return a.Before(*b)
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	matched := []events.Event{}
	for _, event := range d.events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

func strPtr(s string) *string { return &s }
