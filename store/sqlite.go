package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dualdm/dualdm/domain"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

// maxAppendRetries bounds how often AppendTurn recomputes the turn number
// after losing a (partida_id, numero_turno) uniqueness race. Every lost
// race means another writer committed, so one retry per concurrent
// contender suffices.
const maxAppendRetries = 8

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS partidas (
			id TEXT PRIMARY KEY,
			system_prompt TEXT NOT NULL,
			modelo_1 TEXT NOT NULL,
			modelo_2 TEXT NOT NULL,
			fecha DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS turnos (
			partida_id TEXT NOT NULL,
			numero_turno INTEGER NOT NULL,
			accion_usuario TEXT NOT NULL,
			respuesta_ia1 TEXT NOT NULL,
			respuesta_ia2 TEXT NOT NULL,
			creado_en DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (partida_id, numero_turno),
			FOREIGN KEY (partida_id) REFERENCES partidas(id)
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession allocates a new id and persists the session.
func (s *SQLiteStore) CreateSession(ctx context.Context, systemPrompt, modelA, modelB string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO partidas (id, system_prompt, modelo_1, modelo_2, fecha) VALUES (?, ?, ?, ?, ?)`,
		id, systemPrompt, modelA, modelB, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("insert partida: %w", err)
	}
	return id, nil
}

// ListSessions lists stored sessions, most recently created first.
func (s *SQLiteStore) ListSessions(ctx context.Context) ([]domain.SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, fecha, system_prompt FROM partidas ORDER BY fecha DESC`)
	if err != nil {
		return nil, fmt.Errorf("list partidas: %w", err)
	}
	defer rows.Close()

	var sessions []domain.SessionSummary
	for rows.Next() {
		var sum domain.SessionSummary
		if err := rows.Scan(&sum.ID, &sum.CreatedAt, &sum.SystemPrompt); err != nil {
			return nil, fmt.Errorf("scan partida: %w", err)
		}
		sessions = append(sessions, sum)
	}
	return sessions, rows.Err()
}

// GetSession retrieves a session by ID. Returns ErrNotFound if it does not
// exist.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	var session domain.Session
	err := s.db.QueryRowContext(ctx,
		`SELECT id, system_prompt, modelo_1, modelo_2, fecha FROM partidas WHERE id = ?`,
		sessionID).Scan(&session.ID, &session.SystemPrompt, &session.ModelA, &session.ModelB, &session.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select partida: %w", err)
	}
	return &session, nil
}

// GetTurns retrieves the turns of a session in ascending turn order.
func (s *SQLiteStore) GetTurns(ctx context.Context, sessionID string) ([]domain.Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT partida_id, numero_turno, accion_usuario, respuesta_ia1, respuesta_ia2, creado_en
		 FROM turnos WHERE partida_id = ? ORDER BY numero_turno ASC`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("list turnos: %w", err)
	}
	defer rows.Close()

	var turns []domain.Turn
	for rows.Next() {
		var t domain.Turn
		if err := rows.Scan(&t.SessionID, &t.TurnNumber, &t.PlayerAction, &t.ResponseA, &t.ResponseB, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turno: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// AppendTurn persists a completed turn under the next turn number. The
// composite primary key enforces uniqueness; on a conflict the number is
// recomputed and the insert retried.
func (s *SQLiteStore) AppendTurn(ctx context.Context, sessionID, playerAction, responseA, responseB string) (*domain.Turn, error) {
	// The foreign key alone would surface a missing session as a bare
	// constraint error, so look it up first for a typed ErrNotFound.
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxAppendRetries; attempt++ {
		var max sql.NullInt64
		if err := s.db.QueryRowContext(ctx,
			`SELECT MAX(numero_turno) FROM turnos WHERE partida_id = ?`,
			sessionID).Scan(&max); err != nil {
			return nil, fmt.Errorf("next turn number: %w", err)
		}
		next := int(max.Int64) + 1

		now := time.Now().UTC()
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO turnos (partida_id, numero_turno, accion_usuario, respuesta_ia1, respuesta_ia2, creado_en)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			sessionID, next, playerAction, responseA, responseB, now)
		if err == nil {
			return &domain.Turn{
				SessionID:    sessionID,
				TurnNumber:   next,
				PlayerAction: playerAction,
				ResponseA:    responseA,
				ResponseB:    responseB,
				CreatedAt:    now,
			}, nil
		}

		var sqlErr sqlite3.Error
		if errors.As(err, &sqlErr) && sqlErr.Code == sqlite3.ErrConstraint {
			// Another append for this session claimed the number first.
			lastErr = err
			continue
		}
		return nil, fmt.Errorf("insert turno: %w", err)
	}
	return nil, fmt.Errorf("insert turno: %w", lastErr)
}
