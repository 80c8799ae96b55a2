package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/dualdm/dualdm/domain"
)

// MockClient is a mock implementation of CompletionClient for running the
// game without backend credentials.
type MockClient struct{}

// NewMockClient creates a new mock completion client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements CompletionClient interface.
var _ CompletionClient = (*MockClient)(nil)

// CreateChatCompletion returns a canned narration based on the request.
func (m *MockClient) CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	responseContent := m.generateMockResponse(req)

	return &ChatCompletionResponse{
		ID:      fmt.Sprintf("mock-chatcmpl-%d", time.Now().UnixNano()),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []Choice{
			{
				Index: 0,
				Message: &domain.ChatMessage{
					Role:    domain.RoleAssistant,
					Content: responseContent,
				},
				FinishReason: "stop",
			},
		},
		Usage: &Usage{
			PromptTokens:     m.estimateTokens(req),
			CompletionTokens: len(responseContent) / 4,
			TotalTokens:      m.estimateTokens(req) + len(responseContent)/4,
		},
	}, nil
}

// generateMockResponse narrates the last player action.
func (m *MockClient) generateMockResponse(req *ChatCompletionRequest) string {
	var lastUserMessage string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			lastUserMessage = req.Messages[i].Content
			break
		}
	}

	if lastUserMessage == "" {
		return "[MOCK] The dungeon master ponders in silence."
	}

	return fmt.Sprintf("[MOCK] The dungeon master considers %q and narrates the outcome.", truncate(lastUserMessage, 100))
}

// estimateTokens provides a rough token count estimate.
func (m *MockClient) estimateTokens(req *ChatCompletionRequest) int {
	total := 0
	for _, msg := range req.Messages {
		total += len(msg.Content) / 4
	}
	return total
}

// truncate truncates a string to the given length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
