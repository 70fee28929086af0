package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// UserRepository defines persistence access for users. The store is
// append-mostly: users are created on first contact and never deleted.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	UpdateRole(ctx context.Context, id int64, role domain.UserRole) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, int, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, username, first_name, last_name, role, phone_number, registered_at`

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.PhoneNumber,
		&user.RegisteredAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, username, first_name, last_name, role, phone_number)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING registered_at`

	return r.pool.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Role,
		user.PhoneNumber,
	).Scan(&user.RegisteredAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET username=$1, first_name=$2, last_name=$3, phone_number=$4
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		user.Username,
		user.FirstName,
		user.LastName,
		user.PhoneNumber,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id int64, role domain.UserRole) (*domain.User, error) {
	const query = `
        UPDATE users SET role=$2 WHERE id=$1
        RETURNING ` + userColumns

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, id, role).Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.PhoneNumber,
		&user.RegisteredAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]domain.User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `SELECT ` + userColumns + ` FROM users ORDER BY id ASC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.FirstName,
			&user.LastName,
			&user.Role,
			&user.PhoneNumber,
			&user.RegisteredAt,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}
