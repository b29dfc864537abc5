package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Redis    RedisConfig
}

type AppConfig struct {
	AppName     string `env:"APP_NAME" envDefault:"skill-directory"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"3000"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`
}

type DatabaseConfig struct {
	DBHost     string `env:"DB_HOST,required,notEmpty"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBName     string `env:"DB_NAME,required,notEmpty"`
	DBUser     string `env:"DB_USER,required,notEmpty"`
	DBPassword string `env:"DB_PASSWORD"`
	DBSSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`

	ConnectTimeout        time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"5s"`
	PoolMaxConns          int32         `env:"DB_POOL_MAX_CONNS"`
	PoolMinConns          int32         `env:"DB_POOL_MIN_CONNS"`
	PoolMaxConnLifetime   time.Duration `env:"DB_POOL_MAX_CONN_LIFETIME"`
	PoolMaxConnIdleTime   time.Duration `env:"DB_POOL_MAX_CONN_IDLE_TIME"`
	PoolHealthCheckPeriod time.Duration `env:"DB_POOL_HEALTH_CHECK_PERIOD"`
}

// JWTConfig has no default secret. ExpiresIn of zero issues tokens without exp.
type JWTConfig struct {
	Secret    string        `env:"JWT_SECRET,required,notEmpty"`
	ExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"0s"`
}

type AuthConfig struct {
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

type RedisConfig struct {
	Host     string        `env:"REDIS_HOST"`
	Port     string        `env:"REDIS_PORT" envDefault:"6379"`
	Password string        `env:"REDIS_PASSWORD"`
	TTL      time.Duration `env:"REDIS_TTL" envDefault:"10m"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Host) != ""
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", strings.TrimSpace(r.Host), strings.TrimSpace(r.Port))
}

var errInvalidConfig = errors.New("invalid configuration")

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", errInvalidConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadStorage parses everything except the token settings. Admin commands use
// it so they can run without a signing secret.
func LoadStorage() (Config, error) {
	var cfg Config
	for _, target := range []any{&cfg.App, &cfg.Database, &cfg.Auth, &cfg.Redis} {
		if err := env.Parse(target); err != nil {
			return Config{}, fmt.Errorf("%w: %w", errInvalidConfig, err)
		}
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var problems []string
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		problems = append(problems, fmt.Sprintf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.JWT.ExpiresIn < 0 {
		problems = append(problems, "JWT_EXPIRES_IN must not be negative")
	}
	if strings.TrimSpace(c.App.HTTPPort) == "" {
		problems = append(problems, "HTTP_PORT must not be empty")
	}
	if c.Database.PoolMinConns > 0 && c.Database.PoolMaxConns > 0 && c.Database.PoolMinConns > c.Database.PoolMaxConns {
		problems = append(problems, "DB_POOL_MIN_CONNS exceeds DB_POOL_MAX_CONNS")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", errInvalidConfig, strings.Join(problems, ", "))
	}
	return nil
}
