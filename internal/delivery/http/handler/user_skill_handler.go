package handler

import (
	"strings"

	"skill-directory/internal/delivery/http/dto"
	"skill-directory/internal/delivery/http/middleware"
	"skill-directory/internal/pkg/response"
	"skill-directory/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserSkillHandler struct {
	uc usecase.UserSkillUsecase
}

func NewUserSkillHandler(uc usecase.UserSkillUsecase) *UserSkillHandler {
	return &UserSkillHandler{uc: uc}
}

// RegisterRoutes mounts the assignment routes. Every route runs authMw
// first; any authenticated caller may act on any user id.
func (h *UserSkillHandler) RegisterRoutes(r fiber.Router, authMw fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/users/:id/userSkills", authMw, h.List)
	r.Post("/users/:id/userSkills", authMw, h.Create)
	r.Delete("/users/:userId/userSkills/:id", authMw, h.Delete)
}

func (h *UserSkillHandler) List(c fiber.Ctx) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	items, err := h.uc.ListUserSkills(c.Context(), userID)
	if err != nil {
		return middleware.FromDomain(err)
	}

	res := make([]dto.UserSkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.NewUserSkillResponse(it))
	}
	return response.JSON(c, fiber.StatusOK, res)
}

func (h *UserSkillHandler) Create(c fiber.Ctx) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req dto.CreateUserSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid request body", err)
	}
	skillID, err := uuid.Parse(strings.TrimSpace(req.SkillID))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid skill_id", err)
	}

	created, err := h.uc.AssignSkill(c.Context(), userID, skillID)
	if err != nil {
		return middleware.FromDomain(err)
	}
	return response.JSON(c, fiber.StatusCreated, dto.NewUserSkillResponse(created))
}

func (h *UserSkillHandler) Delete(c fiber.Ctx) error {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.UnassignSkill(c.Context(), userID, id); err != nil {
		return middleware.FromDomain(err)
	}
	return response.NoContent(c)
}

func pathUUID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "invalid "+name, err)
	}
	return id, nil
}
