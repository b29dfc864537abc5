package handler

import (
	"skill-directory/internal/delivery/http/dto"
	"skill-directory/internal/delivery/http/middleware"
	"skill-directory/internal/pkg/response"
	"skill-directory/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/users", h.List)
}

func (h *UserHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListUsers(c.Context())
	if err != nil {
		return middleware.FromDomain(err)
	}

	res := make([]dto.UserResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.NewUserResponse(it))
	}
	return response.JSON(c, fiber.StatusOK, res)
}
