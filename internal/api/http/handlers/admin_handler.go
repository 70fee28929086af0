package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/pkg/apperrors"
)

// AdminHandler manages administrative oversight endpoints.
type AdminHandler struct {
	requests *service.RequestService
	users    *service.UserService
	settings *service.SettingsService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(requests *service.RequestService, users *service.UserService, settings *service.SettingsService) *AdminHandler {
	return &AdminHandler{requests: requests, users: users, settings: settings}
}

// ListActive GET /admin/requests/active.
func (h *AdminHandler) ListActive(c *fiber.Ctx) error {
	page, pageSize := parsePage(c)
	requests, total, err := h.requests.ListAllInProgress(c.Context(), page, pageSize, parseSort(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestPage(requests, total, page, pageSize)})
}

// ListArchive GET /admin/requests/archive. Optional engineer_id narrows the
// full history to one engineer's completions.
func (h *AdminHandler) ListArchive(c *fiber.Ctx) error {
	page, pageSize := parsePage(c)

	var engineerID *int64
	if raw := c.Query("engineer_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return apperrors.NewInvalidArgument("invalid engineer_id", map[string]any{"engineer_id": raw})
		}
		engineerID = &parsed
	}

	requests, total, err := h.requests.ListArchived(c.Context(), engineerID, page, pageSize, parseSort(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestPage(requests, total, page, pageSize)})
}

// ListUsers GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	page, pageSize := parsePage(c)
	users, total, err := h.users.ListUsers(c.Context(), page, pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": dto.UserPageResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}})
}

// SetRole PUT /admin/users/:id/role.
func (h *AdminHandler) SetRole(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidArgument("invalid payload", nil)
	}
	user, err := h.users.SetRole(c.Context(), id, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// GetAssistantSetting GET /admin/settings/assistant.
func (h *AdminHandler) GetAssistantSetting(c *fiber.Ctx) error {
	enabled, err := h.settings.AssistantEnabled(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AssistantSettingResponse{Enabled: enabled}})
}

// SetAssistantSetting PUT /admin/settings/assistant.
func (h *AdminHandler) SetAssistantSetting(c *fiber.Ctx) error {
	var req dto.UpdateAssistantSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidArgument("invalid payload", nil)
	}
	if req.Enabled == nil {
		return apperrors.NewInvalidArgument("enabled required", nil)
	}
	if err := h.settings.SetAssistantEnabled(c.Context(), *req.Enabled); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AssistantSettingResponse{Enabled: *req.Enabled}})
}
