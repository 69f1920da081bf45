package provider

import (
	"log"
	"os"
	"time"
)

const (
	// EnvMode is the environment variable name for mode selection.
	EnvMode = "INTERVIEWD_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// NewProvider creates a provider based on the INTERVIEWD_MODE environment
// variable. INTERVIEWD_MODE=MOCK returns the mock; anything else returns the
// real client.
func NewProvider(baseURL, apiKey, model string, timeout time.Duration) Provider {
	if os.Getenv(EnvMode) == ModeMock {
		log.Println("INTERVIEWD_MODE=MOCK detected, using mock reasoning provider")
		return NewMockProvider()
	}
	return NewClient(baseURL, apiKey, model, timeout)
}
