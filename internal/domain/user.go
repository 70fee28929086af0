package domain

import "time"

// UserRole enumerates the three mutually exclusive roles.
type UserRole string

const (
	RoleClient   UserRole = "CLIENT"
	RoleEngineer UserRole = "ENGINEER"
	RoleAdmin    UserRole = "ADMIN"
)

// ValidRole reports whether the value is a known role.
func ValidRole(role UserRole) bool {
	switch role {
	case RoleClient, RoleEngineer, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for a person known to the helpdesk. The ID is the
// stable identity assigned by the messaging platform, never generated here.
type User struct {
	ID           int64
	Username     *string
	FirstName    *string
	LastName     *string
	Role         UserRole
	PhoneNumber  *string
	RegisteredAt time.Time
}

// DisplayName returns the best human-readable name available.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != nil && u.LastName != nil:
		return *u.FirstName + " " + *u.LastName
	case u.FirstName != nil:
		return *u.FirstName
	case u.Username != nil:
		return "@" + *u.Username
	}
	return ""
}
