package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Storage backend names.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// App holds core runtime configuration.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"quizkit"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Quiz     Quiz
	Storage  Storage
	Redis    Redis
	Postgres Postgres
}

// Quiz groups gameplay defaults.
type Quiz struct {
	QuestionFile     string        `env:"QUESTION_FILE" envDefault:"configs/questions.json"`
	QuestionDuration time.Duration `env:"PER_QUESTION_SECONDS" envDefault:"30s"`
	FeedbackDuration time.Duration `env:"FEEDBACK_SECONDS" envDefault:"2s"`
}

// Storage selects and configures the leaderboard backend.
type Storage struct {
	Backend  string `env:"LEADERBOARD_BACKEND" envDefault:"file"`
	FilePath string `env:"LEADERBOARD_FILE" envDefault:"data/leaderboard.json"`
}

// Redis holds connection info for the redis backend.
type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
}

// Postgres captures connection info for the postgres backend. Fields are
// optional at parse time and validated only when that backend is selected.
type Postgres struct {
	Host     string `env:"PG_HOST" envDefault:"localhost"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER"`
	Password string `env:"PG_PASSWORD"`
	Database string `env:"PG_DATABASE"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *App) validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendRedis:
	case BackendPostgres:
		if c.Postgres.User == "" || c.Postgres.Database == "" {
			return fmt.Errorf("postgres backend requires PG_USER and PG_DATABASE")
		}
	default:
		return fmt.Errorf("unknown leaderboard backend %q", c.Storage.Backend)
	}
	if c.Quiz.QuestionDuration < time.Second {
		return fmt.Errorf("PER_QUESTION_SECONDS must be at least 1s")
	}
	if c.Quiz.FeedbackDuration <= 0 {
		return fmt.Errorf("FEEDBACK_SECONDS must be positive")
	}
	return nil
}
