package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/pkg/apperrors"
)

type serviceFixture struct {
	users       *fakeUserStore
	requests    *fakeRequestStore
	dispatcher  *recordingDispatcher
	requestSvc  *RequestService
	assignSvc   *AssignmentService
	userService *UserService
}

func newServiceFixture() *serviceFixture {
	users := newFakeUserStore()
	requests := newFakeRequestStore()
	dispatcher := &recordingDispatcher{}
	return &serviceFixture{
		users:       users,
		requests:    requests,
		dispatcher:  dispatcher,
		requestSvc:  NewRequestService(requests, users, dispatcher),
		assignSvc:   NewAssignmentService(requests, dispatcher),
		userService: NewUserService(users, dispatcher),
	}
}

func (f *serviceFixture) addUser(t *testing.T, id int64, role domain.UserRole) {
	t.Helper()
	f.users.users[id] = domain.User{ID: id, Role: role}
}

func (f *serviceFixture) fileRequest(t *testing.T, requesterID int64) *domain.Request {
	t.Helper()
	request, err := f.requestSvc.Create(context.Background(), requesterID, RequestCreateInput{
		Building:    "B2",
		Room:        "204",
		Description: "monitor flickers",
	})
	require.NoError(t, err)
	return request
}

func TestRequestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("new request starts WAITING", func(t *testing.T) {
		f := newServiceFixture()
		f.addUser(t, 1, domain.RoleClient)

		request, err := f.requestSvc.Create(ctx, 1, RequestCreateInput{
			FullName:     strPtr("John Doe"),
			Building:     "  B2 ",
			Room:         "204",
			Description:  "monitor flickers",
			AssetTag:     strPtr("INV-123"),
			ContactPhone: strPtr("+1 555 0100"),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusWaiting, request.Status)
		assert.Equal(t, "B2", request.Building)
		assert.Nil(t, request.EngineerID)
		assert.Nil(t, request.AcceptedAt)
		assert.False(t, request.CreatedAt.IsZero())

		require.Len(t, f.dispatcher.byType(events.EventRequestCreated), 1)
	})

	t.Run("blank required fields are rejected", func(t *testing.T) {
		f := newServiceFixture()
		f.addUser(t, 1, domain.RoleClient)

		_, err := f.requestSvc.Create(ctx, 1, RequestCreateInput{Building: "B2", Room: "  ", Description: "x"})
		assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))
	})

	t.Run("unknown requester is NotFound", func(t *testing.T) {
		f := newServiceFixture()
		_, err := f.requestSvc.Create(ctx, 404, RequestCreateInput{Building: "B2", Room: "204", Description: "x"})
		assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	})
}

func TestRequestService_ListWaiting(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	f.addUser(t, 1, domain.RoleClient)

	first := f.fileRequest(t, 1)
	second := f.fileRequest(t, 1)
	third := f.fileRequest(t, 1)

	t.Run("queue is FIFO", func(t *testing.T) {
		waiting, err := f.requestSvc.ListWaiting(ctx)
		require.NoError(t, err)
		require.Len(t, waiting, 3)
		assert.Equal(t, first.ID, waiting[0].ID)
		assert.Equal(t, second.ID, waiting[1].ID)
		assert.Equal(t, third.ID, waiting[2].ID)
	})

	t.Run("claimed request leaves the queue", func(t *testing.T) {
		_, err := f.assignSvc.Claim(ctx, second.ID, 100)
		require.NoError(t, err)

		waiting, err := f.requestSvc.ListWaiting(ctx)
		require.NoError(t, err)
		require.Len(t, waiting, 2)
		for _, request := range waiting {
			assert.NotEqual(t, second.ID, request.ID)
		}
	})
}

func TestRequestService_ListAssigned(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	f.addUser(t, 1, domain.RoleClient)

	a := f.fileRequest(t, 1)
	b := f.fileRequest(t, 1)
	c := f.fileRequest(t, 1)

	_, err := f.assignSvc.Claim(ctx, a.ID, 100)
	require.NoError(t, err)
	_, err = f.assignSvc.Claim(ctx, b.ID, 200)
	require.NoError(t, err)
	_, err = f.assignSvc.Claim(ctx, c.ID, 100)
	require.NoError(t, err)

	t.Run("engineer sees only own active requests", func(t *testing.T) {
		items, total, err := f.requestSvc.ListAssigned(ctx, 100, 0, 10, "")
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, items, 2)
		assert.Equal(t, a.ID, items[0].ID)
		assert.Equal(t, c.ID, items[1].ID)
	})

	t.Run("admin view covers every engineer", func(t *testing.T) {
		items, total, err := f.requestSvc.ListAllInProgress(ctx, 0, 10, "")
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, items, 3)
	})

	t.Run("completed request drops out", func(t *testing.T) {
		_, err := f.assignSvc.Complete(ctx, a.ID, 100)
		require.NoError(t, err)

		_, total, err := f.requestSvc.ListAssigned(ctx, 100, 0, 10, "")
		require.NoError(t, err)
		assert.Equal(t, 1, total)
	})
}

func TestRequestService_ListArchived(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	f.addUser(t, 1, domain.RoleClient)

	archive := func(engineerID int64, n int) {
		for i := 0; i < n; i++ {
			request := f.fileRequest(t, 1)
			_, err := f.assignSvc.Claim(ctx, request.ID, engineerID)
			require.NoError(t, err)
			_, err = f.assignSvc.Complete(ctx, request.ID, engineerID)
			require.NoError(t, err)
		}
	}
	archive(100, 15)
	archive(200, 3)

	t.Run("engineer history is scoped and totals are true", func(t *testing.T) {
		engineerID := int64(100)
		items, total, err := f.requestSvc.ListArchived(ctx, &engineerID, 0, 10, "")
		require.NoError(t, err)
		assert.Equal(t, 15, total)
		require.Len(t, items, 10)
		for _, request := range items {
			assert.Equal(t, engineerID, *request.EngineerID)
			assert.Equal(t, domain.StatusArchived, request.Status)
		}

		items, total, err = f.requestSvc.ListArchived(ctx, &engineerID, 1, 10, "")
		require.NoError(t, err)
		assert.Equal(t, 15, total)
		assert.Len(t, items, 5)
	})

	t.Run("full archive spans engineers", func(t *testing.T) {
		_, total, err := f.requestSvc.ListArchived(ctx, nil, 0, 10, "")
		require.NoError(t, err)
		assert.Equal(t, 18, total)
	})

	t.Run("unknown sort falls back to the default order", func(t *testing.T) {
		engineerID := int64(200)
		items, _, err := f.requestSvc.ListArchived(ctx, &engineerID, 0, 10, repository.SortKey("bogus"))
		require.NoError(t, err)
		require.Len(t, items, 3)
		for i := 1; i < len(items); i++ {
			assert.False(t, items[i-1].ArchivedAt.Before(*items[i].ArchivedAt))
		}
	})
}

func TestRequestService_ListMine(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	f.addUser(t, 1, domain.RoleClient)
	f.addUser(t, 2, domain.RoleClient)

	open := f.fileRequest(t, 1)
	claimed := f.fileRequest(t, 1)
	done := f.fileRequest(t, 1)
	canceled := f.fileRequest(t, 1)
	f.fileRequest(t, 2)

	_, err := f.assignSvc.Claim(ctx, claimed.ID, 100)
	require.NoError(t, err)
	_, err = f.assignSvc.Claim(ctx, done.ID, 100)
	require.NoError(t, err)
	_, err = f.assignSvc.Complete(ctx, done.ID, 100)
	require.NoError(t, err)
	_, err = f.assignSvc.Cancel(ctx, canceled.ID, 1)
	require.NoError(t, err)

	items, total, err := f.requestSvc.ListMine(ctx, 1, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, items, 2)

	seen := map[int64]bool{}
	for _, request := range items {
		assert.Equal(t, int64(1), request.RequesterID)
		seen[request.ID] = true
	}
	assert.True(t, seen[open.ID])
	assert.True(t, seen[claimed.ID])
	assert.False(t, seen[done.ID])
	assert.False(t, seen[canceled.ID])
}

func TestPageWindow(t *testing.T) {
	limit, offset, err := pageWindow(2, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, limit)
	assert.Equal(t, 50, offset)

	_, _, err = pageWindow(-1, 10)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))

	_, _, err = pageWindow(0, 0)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))
}
