package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/pkg/apperrors"
)

// RequestsHandler manages client-facing request endpoints.
type RequestsHandler struct {
	requests    *service.RequestService
	assignments *service.AssignmentService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requests *service.RequestService, assignments *service.AssignmentService) *RequestsHandler {
	return &RequestsHandler{requests: requests, assignments: assignments}
}

// Create POST /requests.
func (h *RequestsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidArgument("invalid payload", nil)
	}

	request, err := h.requests.Create(c.Context(), principal.User.ID, service.RequestCreateInput{
		FullName:     req.FullName,
		Building:     req.Building,
		Room:         req.Room,
		Description:  req.Description,
		AssetTag:     req.AssetTag,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": requestResponse(request)})
}

// ListMine GET /requests/mine.
func (h *RequestsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	page, pageSize := parsePage(c)
	requests, total, err := h.requests.ListMine(c.Context(), principal.User.ID, page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestPage(requests, total, page, pageSize)})
}

// Get GET /requests/:id. Clients see their own requests; engineers and
// administrators see everything.
func (h *RequestsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		return err
	}
	request, err := h.requests.Get(c.Context(), id)
	if err != nil {
		return err
	}
	if principal.User.Role == domain.RoleClient && request.RequesterID != principal.User.ID {
		return apperrors.NewForbidden("not your request")
	}
	return c.JSON(fiber.Map{"data": requestResponse(request)})
}

// Cancel POST /requests/:id/cancel.
func (h *RequestsHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		return err
	}
	request, err := h.assignments.Cancel(c.Context(), id, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponse(request)})
}
