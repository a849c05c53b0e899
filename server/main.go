package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lagoona/api/routes"
	"lagoona/internal/holds"
	"lagoona/internal/notifications"
	"lagoona/internal/shared/config"
	"lagoona/internal/shared/database"
	"lagoona/internal/shared/middleware"
	"lagoona/pkg/cache"
	"lagoona/pkg/logger"
	"lagoona/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	log := logger.New()
	logger.SetDefault(log)

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Error("failed to initialize databases", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()
	cache.Init(db.Redis)

	ctx := context.Background()

	holdEngine := holds.NewEngine(db.Redis)
	if err := holdEngine.PreloadScripts(ctx); err != nil {
		log.Error("failed to preload hold scripts", "error", err.Error())
		os.Exit(1)
	}

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.NewLimiter(db.Redis, cfg.RateLimit)
		if err := limiter.Preload(ctx); err != nil {
			log.Warn("failed to preload rate limit script", "error", err.Error())
		}
	}

	notifier, err := notifications.NewService(cfg)
	if err != nil {
		log.Error("failed to initialize notification service", "error", err.Error())
		os.Exit(1)
	}
	notifier.Start()
	defer func() {
		if err := notifier.Stop(); err != nil {
			log.Error("failed to stop notification service", "error", err.Error())
		}
	}()

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(log))
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router := routes.NewRouter(cfg, db, notifier, limiter, holdEngine)
	router.Setup(engine)

	server := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        engine,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info("server starting", "addr", server.Addr, "mode", cfg.GinMode)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err.Error())
	}
	log.Info("server stopped")
}
