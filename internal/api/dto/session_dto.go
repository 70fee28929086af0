package dto

import "time"

// CreateSessionRequest is sent by the chat gateway on each user contact. The
// user id is the platform identity; name fields refresh the directory.
type CreateSessionRequest struct {
	UserID    int64   `json:"user_id"`
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// SessionResponse carries the issued token and the resolved user.
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Created   bool         `json:"created"`
	User      UserResponse `json:"user"`
}
