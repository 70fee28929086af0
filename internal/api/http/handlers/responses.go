package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/pkg/apperrors"
)

const defaultPageSize = 10

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         user.Role,
		PhoneNumber:  user.PhoneNumber,
		RegisteredAt: user.RegisteredAt,
	}
}

func requestResponse(request *domain.Request) dto.RequestResponse {
	resp := dto.RequestResponse{
		ID:           request.ID,
		Status:       request.Status,
		RequesterID:  request.RequesterID,
		EngineerID:   request.EngineerID,
		FullName:     request.FullName,
		Building:     request.Building,
		Room:         request.Room,
		Description:  request.Description,
		AssetTag:     request.AssetTag,
		ContactPhone: request.ContactPhone,
		CreatedAt:    request.CreatedAt,
		AcceptedAt:   request.AcceptedAt,
		CompletedAt:  request.CompletedAt,
		ArchivedAt:   request.ArchivedAt,
	}
	if request.Requester != nil {
		requester := userResponse(request.Requester)
		resp.Requester = &requester
	}
	if request.Engineer != nil {
		engineer := userResponse(request.Engineer)
		resp.Engineer = &engineer
	}
	return resp
}

func requestPage(requests []domain.Request, total, page, pageSize int) dto.RequestPageResponse {
	items := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, requestResponse(&requests[i]))
	}
	return dto.RequestPageResponse{Items: items, Total: total, Page: page, PageSize: pageSize}
}

// parsePage reads zero-indexed page and page_size query parameters. Defaults
// pass through; malformed values fall to the services' validation.
func parsePage(c *fiber.Ctx) (page, pageSize int) {
	page = parseQueryInt(c, "page", 0)
	pageSize = parseQueryInt(c, "page_size", defaultPageSize)
	return page, pageSize
}

func parseQueryInt(c *fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseSort(c *fiber.Ctx) repository.SortKey {
	return repository.SortKey(c.Query("sort"))
}

func parsePathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewInvalidArgument("invalid id", map[string]any{name: c.Params(name)})
	}
	return id, nil
}
