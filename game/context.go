// Package game implements the session turn engine: conversational context
// reconstruction, parallel judging by the two backends, and the turn append.
package game

import "github.com/dualdm/dualdm/domain"

// BuildContexts rebuilds the two per-model conversation histories from the
// session's system prompt and its prior turns, ending with the new player
// action. Both sequences share the system entry and every user entry; the
// assistant entries replay each judge's own prior answers, so neither model
// ever sees its counterpart's memory.
func BuildContexts(systemPrompt string, turns []domain.Turn, playerAction string) (historyA, historyB []domain.ChatMessage) {
	historyA = make([]domain.ChatMessage, 0, 2*len(turns)+2)
	historyB = make([]domain.ChatMessage, 0, 2*len(turns)+2)

	historyA = append(historyA, domain.ChatMessage{Role: domain.RoleSystem, Content: systemPrompt})
	historyB = append(historyB, domain.ChatMessage{Role: domain.RoleSystem, Content: systemPrompt})

	for _, t := range turns {
		historyA = append(historyA,
			domain.ChatMessage{Role: domain.RoleUser, Content: t.PlayerAction},
			domain.ChatMessage{Role: domain.RoleAssistant, Content: t.ResponseA})
		historyB = append(historyB,
			domain.ChatMessage{Role: domain.RoleUser, Content: t.PlayerAction},
			domain.ChatMessage{Role: domain.RoleAssistant, Content: t.ResponseB})
	}

	historyA = append(historyA, domain.ChatMessage{Role: domain.RoleUser, Content: playerAction})
	historyB = append(historyB, domain.ChatMessage{Role: domain.RoleUser, Content: playerAction})

	return historyA, historyB
}
