// Package config provides configuration for the interview service.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Storage. Backend is "memory" or "sqlite"; DatabaseURL only applies to
	// the sqlite backend.
	StoreBackend   string
	DatabaseURL    string
	SessionTimeout time.Duration
	SweepInterval  time.Duration

	// Reasoning provider
	ProviderBaseURL string
	ProviderAPIKey  string
	ProviderModel   string
	ProviderTimeout time.Duration

	// Request bounds
	MaxAnswerLen int
	MaxAudioSize int64
}

// Load reads configuration from environment variables, falling back to
// defaults suitable for local development.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("STORE_BACKEND", "memory")
	v.SetDefault("DATABASE_URL", "file:interviewd.db?cache=shared&mode=rwc")
	v.SetDefault("SESSION_TIMEOUT_MINUTES", 60)
	v.SetDefault("SWEEP_INTERVAL_MINUTES", 10)
	v.SetDefault("PROVIDER_BASE_URL", "https://api.openai.com")
	v.SetDefault("PROVIDER_API_KEY", "")
	v.SetDefault("PROVIDER_MODEL", "gpt-4o-mini")
	v.SetDefault("PROVIDER_TIMEOUT_MS", 60000)
	v.SetDefault("MAX_ANSWER_LEN", 10000)
	v.SetDefault("MAX_AUDIO_SIZE_BYTES", 25<<20)

	return &Config{
		HTTPPort:        v.GetInt("HTTP_PORT"),
		StoreBackend:    v.GetString("STORE_BACKEND"),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		SessionTimeout:  time.Duration(v.GetInt("SESSION_TIMEOUT_MINUTES")) * time.Minute,
		SweepInterval:   time.Duration(v.GetInt("SWEEP_INTERVAL_MINUTES")) * time.Minute,
		ProviderBaseURL: v.GetString("PROVIDER_BASE_URL"),
		ProviderAPIKey:  v.GetString("PROVIDER_API_KEY"),
		ProviderModel:   v.GetString("PROVIDER_MODEL"),
		ProviderTimeout: time.Duration(v.GetInt("PROVIDER_TIMEOUT_MS")) * time.Millisecond,
		MaxAnswerLen:    v.GetInt("MAX_ANSWER_LEN"),
		MaxAudioSize:    v.GetInt64("MAX_AUDIO_SIZE_BYTES"),
	}
}
