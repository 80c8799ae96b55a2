// Package api provides HTTP handlers for the game server.
package api

import (
	"net/http"

	"github.com/dualdm/dualdm/config"
	"github.com/dualdm/dualdm/game"
	"github.com/dualdm/dualdm/policy"
	"github.com/dualdm/dualdm/store"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Handler handles HTTP requests.
type Handler struct {
	store  store.Store
	engine *game.Engine
	rules  *policy.Engine
	config *config.Config
	log    *logrus.Logger
}

// NewHandler creates a new handler.
func NewHandler(st store.Store, engine *game.Engine, rules *policy.Engine, cfg *config.Config, log *logrus.Logger) *Handler {
	return &Handler{
		store:  st,
		engine: engine,
		rules:  rules,
		config: cfg,
		log:    log,
	}
}

// RegisterRoutes registers the game routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/nueva-partida", h.CreateSession)
	e.GET("/api/partidas", h.ListSessions)
	e.GET("/api/historial/:id", h.GetHistory)
	e.POST("/api/turno", h.PlayTurn)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
