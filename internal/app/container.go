package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"skill-directory/internal/config"
	"skill-directory/internal/database"
	dbpostgres "skill-directory/internal/database/postgres"
	"skill-directory/internal/domain/user"
	"skill-directory/internal/infrastructure/cache"
	"skill-directory/internal/infrastructure/persistence/postgres"
	"skill-directory/internal/pkg/jwt"
	"skill-directory/internal/repository"
	"skill-directory/internal/usecase"
	ucauth "skill-directory/internal/usecase/auth"
	"skill-directory/internal/ws"
)

// Repositories are the storage ports the usecases are built on.
type Repositories struct {
	Users      user.Repository
	Skills     repository.SkillRepository
	UserSkills repository.UserSkillRepository
}

// Container owns every long-lived dependency. It holds the only database
// pool; Close releases it.
type Container struct {
	Config config.Config
	Logger *log.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub

	Auth       *usecase.Auth
	Users      *usecase.User
	Skills     *usecase.Skill
	UserSkills *usecase.UserSkill
}

// NewContainer connects to Postgres and Redis and builds the usecases on top
// of the Postgres repositories.
func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	repos := Repositories{
		Users:      postgres.NewUserRepository(db),
		Skills:     repository.NewPostgresSkillRepository(db),
		UserSkills: repository.NewPostgresUserSkillRepository(db),
	}

	c, err := Build(cfg, logger, repos, cache.NewRedis(cfg.Redis, logger))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	c.DB = db
	return c, nil
}

// Build wires usecases over repos. redis may be nil.
func Build(cfg config.Config, logger *log.Logger, repos Repositories, redis *cache.Redis) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	tokens, err := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}
	if cfg.JWT.ExpiresIn <= 0 {
		logger.Printf("[Auth] JWT_EXPIRES_IN not set, issued tokens never expire")
	}

	hasher, err := ucauth.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}
	creds, err := ucauth.NewService(repos.Users, hasher)
	if err != nil {
		return nil, fmt.Errorf("credential store: %w", err)
	}

	hub := ws.NewHub(logger)

	var skillCache usecase.Cache
	if redis != nil {
		skillCache = redis
	}

	return &Container{
		Config:     cfg,
		Logger:     logger,
		Cache:      redis,
		Hub:        hub,
		Auth:       usecase.NewAuthUsecase(creds, repos.Users, tokens, logger),
		Users:      usecase.NewUserUsecase(repos.Users),
		Skills:     usecase.NewSkillUsecase(repos.Skills, skillCache, logger),
		UserSkills: usecase.NewUserSkillUsecase(repos.UserSkills, ws.NewNotifier(hub)),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close cache: %w", err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
