package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/dualdm/dualdm/domain"
	"github.com/dualdm/dualdm/store"
	"github.com/sirupsen/logrus"
)

// Gateway produces a backend's textual response for a message sequence. It
// never fails; degraded backends answer with sentinel text.
type Gateway interface {
	Complete(ctx context.Context, messages []domain.ChatMessage, model string) string
}

// TurnResult carries both judge responses for a played turn.
type TurnResult struct {
	ResponseA string `json:"ia1"`
	ResponseB string `json:"ia2"`
}

// Engine orchestrates one turn: context rebuild, parallel judging, append.
// It holds no per-session state between requests.
type Engine struct {
	store   store.Store
	gateway Gateway
	log     *logrus.Logger
}

// NewEngine creates a new turn engine.
func NewEngine(st store.Store, gw Gateway, log *logrus.Logger) *Engine {
	return &Engine{
		store:   st,
		gateway: gw,
		log:     log,
	}
}

// PlayTurn judges playerAction with both of the session's configured
// backends and appends the completed turn to its history. The two backend
// calls run concurrently and are joined before the append. If the append
// fails the computed responses are discarded and the turn is considered not
// to have happened.
func (e *Engine) PlayTurn(ctx context.Context, sessionID, playerAction string) (*TurnResult, error) {
	session, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	turns, err := e.store.GetTurns(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load turns: %w", err)
	}

	historyA, historyB := BuildContexts(session.SystemPrompt, turns, playerAction)

	var responseA, responseB string
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		responseA = e.gateway.Complete(ctx, historyA, session.ModelA)
	}()
	go func() {
		defer wg.Done()
		responseB = e.gateway.Complete(ctx, historyB, session.ModelB)
	}()
	wg.Wait()

	turn, err := e.store.AppendTurn(ctx, sessionID, playerAction, responseA, responseB)
	if err != nil {
		return nil, fmt.Errorf("append turn: %w", err)
	}

	e.log.WithFields(logrus.Fields{
		"partida": sessionID,
		"turno":   turn.TurnNumber,
	}).Info("turn recorded")

	return &TurnResult{ResponseA: responseA, ResponseB: responseB}, nil
}
