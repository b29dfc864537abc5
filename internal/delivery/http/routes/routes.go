package routes

import (
	"net/http"

	"skill-directory/internal/delivery/http/handler"
	"skill-directory/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

// Registry holds every handler the app mounts. Nil handlers are skipped.
type Registry struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Skill     *handler.SkillHandler
	User      *handler.UserHandler
	UserSkill *handler.UserSkillHandler
	WS        *ws.Handler
	Metrics   http.Handler

	AuthMiddleware fiber.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerOps(app)
	r.registerAPI(app.Group("/api"))
}

func (r *Registry) registerOps(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	if r.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(r.Metrics))
	}
	if r.WS != nil {
		app.Get("/ws/user-skills", r.WS.HandleUserSkillsWS)
	}
}
