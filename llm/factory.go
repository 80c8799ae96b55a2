package llm

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// EnvDMMode is the environment variable name for mode selection.
	EnvDMMode = "DM_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// NewCompletionClient creates a completion client based on the DM_MODE
// environment variable. If DM_MODE=MOCK, returns a MockClient; otherwise
// returns a real Client.
func NewCompletionClient(baseURL, apiKey string, timeout time.Duration) CompletionClient {
	if os.Getenv(EnvDMMode) == ModeMock {
		logrus.Info("DM_MODE=MOCK detected, using mock completion client")
		return NewMockClient()
	}

	return NewClient(baseURL, apiKey, timeout)
}
