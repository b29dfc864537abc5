package routes

import "github.com/gofiber/fiber/v3"

func (r *Registry) registerAPI(api fiber.Router) {
	if api == nil {
		return
	}

	authMw := r.AuthMiddleware
	if authMw == nil {
		authMw = func(c fiber.Ctx) error { return fiber.ErrUnauthorized }
	}

	if r.Auth != nil {
		r.Auth.RegisterRoutes(api.Group("/auth"), authMw)
	}
	if r.Skill != nil {
		r.Skill.RegisterRoutes(api)
	}
	if r.User != nil {
		r.User.RegisterRoutes(api)
	}
	if r.UserSkill != nil {
		r.UserSkill.RegisterRoutes(api, authMw)
	}
}
