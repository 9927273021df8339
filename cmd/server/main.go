package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/derive-duel-backend/internal/config"
	"github.com/pushp314/derive-duel-backend/internal/database"
	"github.com/pushp314/derive-duel-backend/internal/duel"
	"github.com/pushp314/derive-duel-backend/internal/evaluator"
	"github.com/pushp314/derive-duel-backend/internal/handlers"
	"github.com/pushp314/derive-duel-backend/internal/hints"
	"github.com/pushp314/derive-duel-backend/internal/routes"
	"github.com/pushp314/derive-duel-backend/internal/services"
	"github.com/pushp314/derive-duel-backend/internal/store"
	"github.com/pushp314/derive-duel-backend/pkg/logger"
)

func main() {
	// 1. Config & logger
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Env)

	logger.Info().Str("environment", cfg.Env).Msg("Starting Derive Duel backend...")

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Storage
	database.Connect()
	database.InitRedis()

	logger.Info().Msg("Running database migrations...")
	if err := database.Migrate(database.DB); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// 3. Evaluator and duel services
	cred := cfg.DefaultCredential()
	if !cred.Present() {
		logger.Warn().Msg("GEMINI_API_KEY not set, using local scoring unless callers send their own key")
	}
	remote := evaluator.NewGemini(cred.Model)
	normalizer := evaluator.NewNormalizer(remote, cred)

	if cfg.JWTSecret == "" {
		logger.Warn().Msg("JWT_SECRET not set, duel tokens will not survive a restart")
	}
	signer, err := duel.NewSigner(cfg.JWTSecret)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create token signer")
	}

	hub := handlers.NewDuelHub()
	defer hub.Close()

	st := store.New(database.DB)
	cache := database.NewCache(database.Redis)

	h := &handlers.Handler{
		DB:        database.DB,
		Store:     st,
		Evaluator: normalizer,
		Hints:     hints.NewBroker(remote, cred),
		Budget:    services.NewHintBudget(cache, cfg.MaxHints),
		Duels:     duel.NewService(st, normalizer, signer, duel.WithNotifier(hub)),
		Cache:     cache,
	}

	// 4. Router
	r := routes.NewRouter(h, hub, cfg.FrontendURL)

	// 5. Start server with graceful shutdown
	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// remote evaluation can take a while
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
