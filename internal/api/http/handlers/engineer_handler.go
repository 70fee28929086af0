package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/pkg/apperrors"
)

// EngineerHandler manages the engineer's work queue endpoints.
type EngineerHandler struct {
	requests    *service.RequestService
	assignments *service.AssignmentService
}

// NewEngineerHandler constructs handler.
func NewEngineerHandler(requests *service.RequestService, assignments *service.AssignmentService) *EngineerHandler {
	return &EngineerHandler{requests: requests, assignments: assignments}
}

// ListWaiting GET /requests/waiting.
func (h *EngineerHandler) ListWaiting(c *fiber.Ctx) error {
	requests, err := h.requests.ListWaiting(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, requestResponse(&requests[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Claim POST /requests/:id/claim.
func (h *EngineerHandler) Claim(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		return err
	}
	request, err := h.assignments.Claim(c.Context(), id, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponse(request)})
}

// Complete POST /requests/:id/complete.
func (h *EngineerHandler) Complete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		return err
	}
	request, err := h.assignments.Complete(c.Context(), id, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponse(request)})
}

// ListAssigned GET /requests/assigned.
func (h *EngineerHandler) ListAssigned(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	page, pageSize := parsePage(c)
	requests, total, err := h.requests.ListAssigned(c.Context(), principal.User.ID, page, pageSize, parseSort(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestPage(requests, total, page, pageSize)})
}

// ListArchive GET /requests/archive. Engineers see their own completion
// history; administrators reach the full archive under /admin.
func (h *EngineerHandler) ListArchive(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	page, pageSize := parsePage(c)
	engineerID := principal.User.ID
	requests, total, err := h.requests.ListArchived(c.Context(), &engineerID, page, pageSize, parseSort(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestPage(requests, total, page, pageSize)})
}
