package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"vidtube/database"
	"vidtube/internal/config"
	"vidtube/internal/microservices/http-api/handler"
	"vidtube/internal/microservices/http-api/middleware"
	"vidtube/internal/microservices/http-api/repository"
	"vidtube/internal/microservices/http-api/service"
	"vidtube/internal/middleware/auth"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	// Setup structured logging
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// Connect to the database
	db, err := database.OpenGorm(cfg, logger)
	if err != nil {
		logger.Error("database_connect_failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.Migrate(db, cfg, logger); err != nil {
		logger.Error("database_migrate_failed", "error", err)
		os.Exit(1)
	}

	// Redis only caches video lookups, so run without it if it is down
	var rdb *redis.Client
	if client, err := repository.NewRedisClient(cfg.RedisURL, cfg.RedisPassword); err != nil {
		logger.Warn("redis_unavailable_cache_disabled", "error", err)
	} else {
		rdb = client
		defer rdb.Close()
	}

	// Create repositories
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewCachedVideoRepository(repository.NewVideoRepository(db), rdb, cfg.CacheTTL)

	commentService := service.NewCommentService(commentRepo, likeRepo, userRepo, videoRepo, logger)
	commentHandler := handler.NewCommentHandler(commentService)

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	metrics := middleware.NewMetrics()
	r.Use(metrics.Middleware())

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "API is alive"})
	})
	r.GET("/metrics", metrics.Handler())

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	commentHandler.RegisterRoutes(
		r.Group("/api/v1"),
		middleware.OptionalAuthMiddleware(verifier),
		middleware.AuthMiddleware(verifier),
		limiter.Middleware(),
	)

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           corsHandler(r),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting_api_server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info("received_shutdown_signal")
	case err := <-errChan:
		logger.Error("server_error", "error", err.Error())
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
		return
	}
	logger.Info("server_stopped_gracefully")
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
