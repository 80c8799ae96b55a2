package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/dualdm/dualdm/api"
	"github.com/dualdm/dualdm/config"
	"github.com/dualdm/dualdm/game"
	"github.com/dualdm/dualdm/llm"
	"github.com/dualdm/dualdm/policy"
	"github.com/dualdm/dualdm/store"
)

func main() {
	log := logrus.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	log.Info("Starting dual DM server...")
	log.Infof("HTTP Port: %d", cfg.Port)
	log.Infof("Database: %s", cfg.DatabaseURL)
	log.Infof("Judge models: %s / %s", cfg.ModelA, cfg.ModelB)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize gateway over the completion client
	client := llm.NewCompletionClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMTimeout)
	gateway := llm.NewGateway(client, cfg.Temperature, cfg.MaxTokens, log)

	// Initialize table rules
	ctx := context.Background()
	rules, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize table rules: %v", err)
	}

	// Initialize turn engine
	engine := game.NewEngine(db, gateway, log)

	// Create Echo server
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Static game client
	e.Static("/", "public")

	// Register routes
	h := api.NewHandler(db, engine, rules, cfg, log)
	h.RegisterRoutes(e)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Infof("Dual DM server started on port %d", cfg.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Failed to shutdown server gracefully: %v", err)
	}

	log.Info("Server stopped")
}
