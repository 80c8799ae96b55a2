// Package store defines the storage interface and implementations.
package store

import (
	"context"
	"errors"

	"github.com/dualdm/dualdm/domain"
)

// ErrNotFound is returned when a referenced session does not exist.
var ErrNotFound = errors.New("session not found")

// Store defines the interface for data persistence. It exclusively owns the
// persisted session and turn records; callers hold only transient copies.
type Store interface {
	// Session operations
	CreateSession(ctx context.Context, systemPrompt, modelA, modelB string) (string, error)
	ListSessions(ctx context.Context) ([]domain.SessionSummary, error)
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)

	// Turn operations
	GetTurns(ctx context.Context, sessionID string) ([]domain.Turn, error)
	AppendTurn(ctx context.Context, sessionID, playerAction, responseA, responseB string) (*domain.Turn, error)

	// Lifecycle
	Close() error
}
