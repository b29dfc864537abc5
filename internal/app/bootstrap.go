package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"skill-directory/internal/config"
	"skill-directory/internal/database/migration"
	"skill-directory/internal/delivery/http/handler"
	"skill-directory/internal/delivery/http/middleware"
	"skill-directory/internal/delivery/http/routes"
	"skill-directory/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the fiber app over an assembled container. It does not start
// the websocket hub.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)

	registry := &routes.Registry{
		Health:         handler.NewHealthHandler(c.DB),
		Auth:           handler.NewAuthHandler(c.Auth),
		Skill:          handler.NewSkillHandler(c.Skills),
		User:           handler.NewUserHandler(c.Users),
		UserSkill:      handler.NewUserSkillHandler(c.UserSkills),
		WS:             ws.NewHandler(c.Hub, c.Logger),
		Metrics:        promhttp.Handler(),
		AuthMiddleware: middleware.NewAuthMiddleware(c.Auth).Middleware(),
	}
	registry.Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects dependencies, applies pending migrations when enabled
// and starts the websocket hub. cleanup stops the hub and closes the pool.
func Bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.App.AutoMigrate {
		if err := (migration.Runner{}).Run(ctx, c.DB); err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	app := New(c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(logger)
	app.Use(accessMw.Middleware())

	errMw := middleware.NewErrorMiddleware(logger)
	app.Use(errMw.Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
