package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"quizkit/internal/config"
	"quizkit/internal/leaderboard"
	"quizkit/internal/logging"
	"quizkit/internal/question"
	"quizkit/internal/quiz"
	"quizkit/internal/server"
	ws "quizkit/pkg/http/ws"
)

// Application aggregates the loaded question set, leaderboard storage, and
// the HTTP server.
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	http  *http.Server
	redis *redis.Client  // set only for the redis backend
	pool  *pgxpool.Pool  // set only for the postgres backend
}

// New bootstraps config, logger, questions, the selected leaderboard store,
// and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	questions, err := question.LoadFile(cfg.Quiz.QuestionFile)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	logger.Info().Int("count", len(questions)).Str("file", cfg.Quiz.QuestionFile).Msg("question set loaded")

	a := &Application{cfg: cfg, logger: logger}

	store, err := a.buildStore(ctx)
	if err != nil {
		return nil, err
	}

	lbSvc := leaderboard.NewService(store, logger)
	hub := ws.NewHub(logger)

	quizHandler := quiz.NewHandler(questions, lbSvc, hub, quiz.HandlerOptions{
		QuestionDuration: cfg.Quiz.QuestionDuration,
		FeedbackDuration: cfg.Quiz.FeedbackDuration,
	}, logger)
	lbHTTP := leaderboard.NewHTTPHandler(lbSvc, logger)

	a.http = server.NewHTTPServer(cfg, logger, quizHandler.HandleWebSocket, lbHTTP.Handle)
	return a, nil
}

// buildStore constructs the configured leaderboard backend and fails fast
// when its medium is unreachable at startup.
func (a *Application) buildStore(ctx context.Context) (leaderboard.Store, error) {
	switch a.cfg.Storage.Backend {
	case config.BackendFile:
		return leaderboard.NewFileStore(a.cfg.Storage.FilePath, a.logger), nil

	case config.BackendRedis:
		a.redis = redis.NewClient(&redis.Options{
			Addr:     a.cfg.Redis.Addr,
			DB:       a.cfg.Redis.DB,
			PoolSize: a.cfg.Redis.PoolSize,
		})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return leaderboard.NewRedisStore(a.redis, a.logger), nil

	case config.BackendPostgres:
		pg := a.cfg.Postgres
		connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=5",
			pg.Host, pg.Port, pg.User, pg.Password, pg.Database, pg.SSLMode)
		pool, err := pgxpool.New(ctx, connString)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		a.pool = pool
		return leaderboard.NewPostgresStore(pool), nil

	default:
		return nil, fmt.Errorf("unknown leaderboard backend %q", a.cfg.Storage.Backend)
	}
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
