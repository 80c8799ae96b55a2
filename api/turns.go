package api

import (
	"errors"
	"net/http"

	"github.com/dualdm/dualdm/policy"
	"github.com/dualdm/dualdm/store"
	"github.com/labstack/echo/v4"
)

// PlayTurnRequest is the body for POST /api/turno.
type PlayTurnRequest struct {
	SessionID    string `json:"partidaId"`
	PlayerAction string `json:"accionJugador"`
}

// PlayTurn judges a player action with both backends and records the turn.
// POST /api/turno
func (h *Handler) PlayTurn(c echo.Context) error {
	var req PlayTurnRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.SessionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "partidaId is required"})
	}
	if req.PlayerAction == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "accionJugador is required"})
	}

	ctx := c.Request().Context()

	decision, err := h.rules.Evaluate(ctx, map[string]interface{}{
		"partida_id": req.SessionID,
		"accion":     req.PlayerAction,
	})
	if err != nil {
		// Rules trouble must not take the table down; the action proceeds.
		h.log.Errorf("evaluate table rules: %v", err)
	} else if decision == policy.DecisionBlock {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Acción rechazada por las reglas de la mesa"})
	}

	result, err := h.engine.PlayTurn(ctx, req.SessionID, req.PlayerAction)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Partida no existe"})
	}
	if err != nil {
		h.log.Errorf("play turn: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error procesando turno"})
	}

	return c.JSON(http.StatusOK, result)
}
