package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/dualdm/dualdm/domain"
	"github.com/sirupsen/logrus"
)

// Sentinel texts shown to the player when a backend cannot answer. A failed
// judge is a narrative event, never an API error.
const (
	NoContentSentinel   = "[Sin respuesta]"
	UnavailableSentinel = "El DM está inconsciente (Error de Red)."
)

// Gateway invokes a chat-completion backend with the deployment's fixed
// sampling configuration and degrades every failure mode to displayable text.
type Gateway struct {
	client      CompletionClient
	temperature float64
	maxTokens   int
	log         *logrus.Logger
}

// NewGateway creates a gateway over the given client.
func NewGateway(client CompletionClient, temperature float64, maxTokens int, log *logrus.Logger) *Gateway {
	return &Gateway{
		client:      client,
		temperature: temperature,
		maxTokens:   maxTokens,
		log:         log,
	}
}

// Complete sends the message sequence to the named model and returns its
// answer as text. It never fails: a structured backend error is embedded in
// the text, an empty completion becomes NoContentSentinel, and a transport
// failure or timeout becomes UnavailableSentinel (logged for operators).
func (g *Gateway) Complete(ctx context.Context, messages []domain.ChatMessage, model string) string {
	temperature := g.temperature
	maxTokens := g.maxTokens

	resp, err := g.client.CreateChatCompletion(ctx, &ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return fmt.Sprintf("[Error IA]: %s", apiErr.Message)
		}
		g.log.WithField("model", model).Warnf("backend unavailable: %v", err)
		return UnavailableSentinel
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil || resp.Choices[0].Message.Content == "" {
		return NoContentSentinel
	}
	return resp.Choices[0].Message.Content
}
