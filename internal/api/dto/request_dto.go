package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateRequestRequest payload.
type CreateRequestRequest struct {
	FullName     *string `json:"full_name"`
	Building     string  `json:"building"`
	Room         string  `json:"room"`
	Description  string  `json:"description"`
	AssetTag     *string `json:"asset_tag"`
	ContactPhone *string `json:"contact_phone"`
}

// RequestResponse represents a repair request with resolved relationships.
type RequestResponse struct {
	ID           int64                `json:"id"`
	Status       domain.RequestStatus `json:"status"`
	RequesterID  int64                `json:"requester_id"`
	EngineerID   *int64               `json:"engineer_id,omitempty"`
	FullName     *string              `json:"full_name,omitempty"`
	Building     string               `json:"building"`
	Room         string               `json:"room"`
	Description  string               `json:"description"`
	AssetTag     *string              `json:"asset_tag,omitempty"`
	ContactPhone *string              `json:"contact_phone,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	AcceptedAt   *time.Time           `json:"accepted_at,omitempty"`
	CompletedAt  *time.Time           `json:"completed_at,omitempty"`
	ArchivedAt   *time.Time           `json:"archived_at,omitempty"`
	Requester    *UserResponse        `json:"requester,omitempty"`
	Engineer     *UserResponse        `json:"engineer,omitempty"`
}

// RequestPageResponse is one page of requests with the true total, so the
// gateway can compute page counts and clamp stale page indexes itself.
type RequestPageResponse struct {
	Items    []RequestResponse `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// AssistantSettingResponse carries the assistant toggle.
type AssistantSettingResponse struct {
	Enabled bool `json:"enabled"`
}

// UpdateAssistantSettingRequest payload.
type UpdateAssistantSettingRequest struct {
	Enabled *bool `json:"enabled"`
}
