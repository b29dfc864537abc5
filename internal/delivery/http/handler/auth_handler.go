package handler

import (
	"skill-directory/internal/delivery/http/dto"
	"skill-directory/internal/delivery/http/middleware"
	"skill-directory/internal/pkg/response"
	"skill-directory/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// RegisterRoutes mounts login and, behind authMw, the caller lookup.
func (h *AuthHandler) RegisterRoutes(r fiber.Router, authMw fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/login", h.Login)
	r.Get("/me", authMw, h.Me)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid request body", err)
	}

	// Missing fields fail the same way as wrong credentials.
	token, err := h.uc.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return middleware.FromDomain(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.TokenResponse{Token: token})
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewUserResponse(caller))
}
