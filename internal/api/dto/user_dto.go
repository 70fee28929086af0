package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// UserResponse represents a user towards the gateway.
type UserResponse struct {
	ID           int64           `json:"id"`
	Username     *string         `json:"username,omitempty"`
	FirstName    *string         `json:"first_name,omitempty"`
	LastName     *string         `json:"last_name,omitempty"`
	Role         domain.UserRole `json:"role"`
	PhoneNumber  *string         `json:"phone_number,omitempty"`
	RegisteredAt time.Time       `json:"registered_at"`
}

// SetRoleRequest payload.
type SetRoleRequest struct {
	Role domain.UserRole `json:"role"`
}

// UserPageResponse is one page of the user directory.
type UserPageResponse struct {
	Items    []UserResponse `json:"items"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}
