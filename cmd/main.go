package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/ahmed-sobhani/rag-chat-be-core/internal/config"
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/domain"
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/handler"
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/repository"
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/service"
	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/database"
	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/log"
	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/middleware"
)

func main() {
	// .env is optional; real deployments use environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		l := log.L()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Init(cfg.Log)
	logger := log.L()

	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.AutoMigrate(db, &domain.SessionModel{}, &domain.MessageModel{}); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database schema")
	}

	sessionRepo := repository.NewGormSessionRepository(db)
	messageRepo := repository.NewGormMessageRepository(db)

	sessionService := service.NewSessionService(sessionRepo)
	messageService := service.NewMessageService(messageRepo, sessionService)

	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth.APIKey)

	var extra []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter := middleware.NewRateLimiter(redisClient, cfg.RateLimit.Limit, cfg.RateLimit.TTL)
		extra = append(extra, limiter.Limit())
		logger.Info().Int("limit", cfg.RateLimit.Limit).Dur("window", cfg.RateLimit.TTL).
			Msg("rate limiting enabled")
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), log.GinMiddleware(logger))

	h := handler.NewHandler(sessionService, messageService, authMiddleware, db)
	h.RegisterRoutes(engine, extra...)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Msg("starting chat API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
	logger.Info().Msg("server stopped")

	// Give async log writers a beat to flush.
	time.Sleep(100 * time.Millisecond)
}
