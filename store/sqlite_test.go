package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestCreateAndGetSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	id, err := store.CreateSession(ctx, "You are a narrator.", "model-a", "model-b")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty session id")
	}

	session, err := store.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if session.SystemPrompt != "You are a narrator." {
		t.Fatalf("unexpected system prompt: %q", session.SystemPrompt)
	}
	if session.ModelA != "model-a" || session.ModelB != "model-b" {
		t.Fatalf("unexpected models: %+v", session)
	}

	turns, err := store.GetTurns(ctx, id)
	if err != nil {
		t.Fatalf("GetTurns failed: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("expected no turns, got %d", len(turns))
	}
}

func TestGetSessionNotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	if _, err := store.GetSession(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListSessionsOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	sessions, err := store.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected empty list, got %d", len(sessions))
	}

	first, err := store.CreateSession(ctx, "first", "a", "b")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := store.CreateSession(ctx, "second", "a", "b")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	sessions, err = store.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != second || sessions[1].ID != first {
		t.Fatalf("expected most recent first, got %+v", sessions)
	}
	if sessions[0].SystemPrompt != "second" {
		t.Fatalf("unexpected summary: %+v", sessions[0])
	}
}

func TestAppendTurnSequence(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	id, err := store.CreateSession(ctx, "prompt", "a", "b")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	actions := []string{"I open the door", "I look inside", "I light a torch"}
	for i, action := range actions {
		turn, err := store.AppendTurn(ctx, id, action, "answer A", "answer B")
		if err != nil {
			t.Fatalf("AppendTurn failed: %v", err)
		}
		if turn.TurnNumber != i+1 {
			t.Fatalf("expected turn number %d, got %d", i+1, turn.TurnNumber)
		}
	}

	turns, err := store.GetTurns(ctx, id)
	if err != nil {
		t.Fatalf("GetTurns failed: %v", err)
	}
	if len(turns) != len(actions) {
		t.Fatalf("expected %d turns, got %d", len(actions), len(turns))
	}
	for i, turn := range turns {
		if turn.TurnNumber != i+1 {
			t.Fatalf("expected gapless sequence, got %+v", turns)
		}
		if turn.PlayerAction != actions[i] {
			t.Fatalf("unexpected action at %d: %q", i, turn.PlayerAction)
		}
		if turn.ResponseA != "answer A" || turn.ResponseB != "answer B" {
			t.Fatalf("unexpected responses: %+v", turn)
		}
	}
}

func TestAppendTurnMissingSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	if _, err := store.AppendTurn(ctx, "missing", "action", "a", "b"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAppendTurnConcurrentGapless(t *testing.T) {
	ctx := context.Background()

	// A file-backed database so all pooled connections share one store;
	// :memory: would give each connection its own.
	dsn := filepath.Join(t.TempDir(), "turnos.db")
	store, err := NewSQLiteStore(dsn)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	id, err := store.CreateSession(ctx, "prompt", "a", "b")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	const writers = 8
	errs := make(chan error, writers)
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_, err := store.AppendTurn(ctx, id, "action", "ra", "rb")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("AppendTurn failed: %v", err)
		}
	}

	turns, err := store.GetTurns(ctx, id)
	if err != nil {
		t.Fatalf("GetTurns failed: %v", err)
	}
	if len(turns) != writers {
		t.Fatalf("expected %d turns, got %d", writers, len(turns))
	}
	for i, turn := range turns {
		if turn.TurnNumber != i+1 {
			t.Fatalf("expected gapless sequence 1..%d, got %+v", writers, turns)
		}
	}
}

func TestAppendTurnIndependentSessions(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	s1, err := store.CreateSession(ctx, "one", "a", "b")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	s2, err := store.CreateSession(ctx, "two", "a", "b")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if _, err := store.AppendTurn(ctx, s1, "x", "ra", "rb"); err != nil {
		t.Fatalf("AppendTurn failed: %v", err)
	}
	turn, err := store.AppendTurn(ctx, s2, "y", "ra", "rb")
	if err != nil {
		t.Fatalf("AppendTurn failed: %v", err)
	}
	if turn.TurnNumber != 1 {
		t.Fatalf("sessions must number turns independently, got %d", turn.TurnNumber)
	}
}
