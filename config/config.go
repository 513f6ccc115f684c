// Package config provides configuration for the chatbot backend.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the backend configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Trial registry
	RegistryBaseURL string
	SearchTimeout   time.Duration // per upstream attempt

	// NLP selection
	NLPMode      string
	OpenAIAPIKey string
	OpenAIModel  string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:        getEnvInt("HTTP_PORT", 8080),
		RegistryBaseURL: getEnv("CLINICALTRIALS_API_BASE", "https://clinicaltrials.gov/api/v2"),
		SearchTimeout:   time.Duration(getEnvInt("SEARCH_TIMEOUT_MS", 10000)) * time.Millisecond,
		NLPMode:         getEnv("NLP_MODE", "HEURISTIC"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
