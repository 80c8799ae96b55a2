// Package domain defines the core domain models for the game server.
package domain

import "time"

// Message roles understood by the chat-completion backends.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Session represents one continuous game with a fixed narrator prompt and
// two fixed judge models. The prompt and models never change after creation.
type Session struct {
	ID           string    `json:"id"`
	SystemPrompt string    `json:"system_prompt"`
	ModelA       string    `json:"modelo_1"`
	ModelB       string    `json:"modelo_2"`
	CreatedAt    time.Time `json:"fecha"`
}

// SessionSummary is the listing projection for stored games.
type SessionSummary struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"fecha"`
	SystemPrompt string    `json:"system_prompt"`
}

// Turn is one player action plus both judge responses at a fixed position
// in a session's history. Turn numbers start at 1 and are gapless.
type Turn struct {
	SessionID    string    `json:"partida_id"`
	TurnNumber   int       `json:"numero_turno"`
	PlayerAction string    `json:"accion_usuario"`
	ResponseA    string    `json:"respuesta_ia1"`
	ResponseB    string    `json:"respuesta_ia2"`
	CreatedAt    time.Time `json:"creado_en"`
}

// ChatMessage is a role-tagged entry in the context sent to a backend.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
