package api

import (
	"errors"
	"net/http"

	"github.com/dualdm/dualdm/domain"
	"github.com/dualdm/dualdm/store"
	"github.com/labstack/echo/v4"
)

// CreateSessionRequest is the body for POST /api/nueva-partida.
type CreateSessionRequest struct {
	SystemPrompt string `json:"systemPrompt"`
}

// CreateSession starts a new game with the deployment's two judge models.
// POST /api/nueva-partida
func (h *Handler) CreateSession(c echo.Context) error {
	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.SystemPrompt == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "systemPrompt is required"})
	}

	id, err := h.store.CreateSession(c.Request().Context(), req.SystemPrompt, h.config.ModelA, h.config.ModelB)
	if err != nil {
		h.log.Errorf("create partida: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al crear partida en BD"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"partidaId": id,
	})
}

// ListSessions lists stored games, most recent first.
// GET /api/partidas
func (h *Handler) ListSessions(c echo.Context) error {
	sessions, err := h.store.ListSessions(c.Request().Context())
	if err != nil {
		h.log.Errorf("list partidas: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al obtener lista"})
	}
	if sessions == nil {
		sessions = []domain.SessionSummary{}
	}

	return c.JSON(http.StatusOK, sessions)
}

// GetHistory loads a game's metadata and full turn history.
// GET /api/historial/:id
func (h *Handler) GetHistory(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()

	session, err := h.store.GetSession(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Partida no encontrada"})
	}
	if err != nil {
		h.log.Errorf("load partida %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al cargar historial"})
	}

	turns, err := h.store.GetTurns(ctx, id)
	if err != nil {
		h.log.Errorf("load turnos %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error al cargar historial"})
	}
	if turns == nil {
		turns = []domain.Turn{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"meta":   session,
		"turnos": turns,
	})
}
