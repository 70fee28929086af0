package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RequestRepository encapsulates request persistence. Claim, Complete and
// Cancel are single conditional UPDATE statements: the status check and the
// write happen in one atomic database operation, so concurrent callers on the
// same row resolve to exactly one winner. Zero affected rows surfaces as
// pgx.ErrNoRows.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.Request) error
	GetByID(ctx context.Context, id int64) (*domain.Request, error)
	Claim(ctx context.Context, id, engineerID int64) (*domain.Request, error)
	Complete(ctx context.Context, id, engineerID int64) (*domain.Request, error)
	Cancel(ctx context.Context, id, requesterID int64) (*domain.Request, error)
	ListWaiting(ctx context.Context) ([]domain.Request, error)
	ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.Request, int, error)
}

type requestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository instantiates repository.
func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &requestRepository{pool: pool}
}

// selectRequests joins both user relationships so callers never need a second
// round trip to resolve the requester or the assigned engineer.
const selectRequests = `
    SELECT r.id, r.requester_id, r.engineer_id, r.full_name, r.building, r.room,
           r.description, r.asset_tag, r.contact_phone, r.status,
           r.created_at, r.accepted_at, r.completed_at, r.archived_at, r.updated_at,
           u.username, u.first_name, u.last_name, u.role, u.phone_number, u.registered_at,
           e.username, e.first_name, e.last_name, e.role, e.phone_number, e.registered_at
    FROM requests r
    JOIN users u ON u.id = r.requester_id
    LEFT JOIN users e ON e.id = r.engineer_id`

func (r *requestRepository) Create(ctx context.Context, request *domain.Request) error {
	const query = `
        INSERT INTO requests (requester_id, full_name, building, room, description, asset_tag, contact_phone, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		request.RequesterID,
		request.FullName,
		request.Building,
		request.Room,
		request.Description,
		request.AssetTag,
		request.ContactPhone,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
}

func (r *requestRepository) GetByID(ctx context.Context, id int64) (*domain.Request, error) {
	row := r.pool.QueryRow(ctx, selectRequests+` WHERE r.id=$1`, id)
	return scanRequestRow(row)
}

func (r *requestRepository) Claim(ctx context.Context, id, engineerID int64) (*domain.Request, error) {
	const query = `
        UPDATE requests
        SET engineer_id=$2, status='IN_PROGRESS', accepted_at=NOW(), updated_at=NOW()
        WHERE id=$1 AND status='WAITING'
        RETURNING id`
	return r.conditionalUpdate(ctx, query, id, engineerID)
}

func (r *requestRepository) Complete(ctx context.Context, id, engineerID int64) (*domain.Request, error) {
	const query = `
        UPDATE requests
        SET status='ARCHIVED', completed_at=NOW(), archived_at=NOW(), updated_at=NOW()
        WHERE id=$1 AND engineer_id=$2 AND status='IN_PROGRESS'
        RETURNING id`
	return r.conditionalUpdate(ctx, query, id, engineerID)
}

func (r *requestRepository) Cancel(ctx context.Context, id, requesterID int64) (*domain.Request, error) {
	const query = `
        UPDATE requests
        SET status='CANCELED', updated_at=NOW()
        WHERE id=$1 AND requester_id=$2 AND status='WAITING'
        RETURNING id`
	return r.conditionalUpdate(ctx, query, id, requesterID)
}

// conditionalUpdate runs a guarded UPDATE and re-reads the row with its
// relationships resolved. pgx.ErrNoRows means the guard did not match.
func (r *requestRepository) conditionalUpdate(ctx context.Context, query string, args ...any) (*domain.Request, error) {
	var updatedID int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, updatedID)
}

func (r *requestRepository) ListWaiting(ctx context.Context) ([]domain.Request, error) {
	rows, err := r.pool.Query(ctx, selectRequests+` WHERE r.status='WAITING' ORDER BY r.created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *requestRepository) ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.Request, int, error) {
	where, args := filter.whereClause()

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM requests r WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		selectRequests, where, OrderClause(filter.Sort, filter.DefaultSort), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result, err := scanRequests(rows)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequestRow(row rowScanner) (*domain.Request, error) {
	var (
		request domain.Request

		requester domain.User

		engUsername     *string
		engFirstName    *string
		engLastName     *string
		engRole         *domain.UserRole
		engPhoneNumber  *string
		engRegisteredAt *time.Time
	)

	if err := row.Scan(
		&request.ID,
		&request.RequesterID,
		&request.EngineerID,
		&request.FullName,
		&request.Building,
		&request.Room,
		&request.Description,
		&request.AssetTag,
		&request.ContactPhone,
		&request.Status,
		&request.CreatedAt,
		&request.AcceptedAt,
		&request.CompletedAt,
		&request.ArchivedAt,
		&request.UpdatedAt,
		&requester.Username,
		&requester.FirstName,
		&requester.LastName,
		&requester.Role,
		&requester.PhoneNumber,
		&requester.RegisteredAt,
		&engUsername,
		&engFirstName,
		&engLastName,
		&engRole,
		&engPhoneNumber,
		&engRegisteredAt,
	); err != nil {
		return nil, err
	}

	requester.ID = request.RequesterID
	request.Requester = &requester

	if request.EngineerID != nil {
		engineer := domain.User{
			ID:          *request.EngineerID,
			Username:    engUsername,
			FirstName:   engFirstName,
			LastName:    engLastName,
			PhoneNumber: engPhoneNumber,
		}
		if engRole != nil {
			engineer.Role = *engRole
		}
		if engRegisteredAt != nil {
			engineer.RegisteredAt = *engRegisteredAt
		}
		request.Engineer = &engineer
	}

	return &request, nil
}

func scanRequests(rows pgx.Rows) ([]domain.Request, error) {
	var result []domain.Request
	for rows.Next() {
		request, err := scanRequestRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *request)
	}
	return result, rows.Err()
}
