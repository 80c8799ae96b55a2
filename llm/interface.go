package llm

import "context"

// CompletionClient defines the chat-completion operations used by the gateway.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error)
}

// Ensure Client implements CompletionClient interface.
var _ CompletionClient = (*Client)(nil)
