package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/pkg/apperrors"
)

// SessionHandler exchanges a gateway-attested identity for a bearer token.
// The gateway authenticates itself with the shared token; human users never
// hold credentials here, identity comes from the messaging platform.
type SessionHandler struct {
	users  *service.UserService
	tokens *auth.TokenManager
	cfg    config.AuthConfig
}

// NewSessionHandler constructs handler.
func NewSessionHandler(users *service.UserService, tokens *auth.TokenManager, cfg config.AuthConfig) *SessionHandler {
	return &SessionHandler{users: users, tokens: tokens, cfg: cfg}
}

// CreateSession POST /auth/session.
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	if h.cfg.GatewayTokenHash == "" {
		return apperrors.NewUnauthorized("gateway token not configured")
	}
	if err := auth.CompareGatewayToken(h.cfg.GatewayTokenHash, c.Get("X-Gateway-Token")); err != nil {
		return apperrors.NewUnauthorized("invalid gateway token")
	}

	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidArgument("invalid payload", nil)
	}
	if req.UserID == 0 {
		return apperrors.NewInvalidArgument("user_id required", nil)
	}

	user, created, err := h.users.GetOrCreate(c.Context(), service.UserIdentity{
		ID:        req.UserID,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}

	token, expiresAt, err := h.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.JSON(fiber.Map{"data": dto.SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Created:   created,
		User:      userResponse(user),
	}})
}
