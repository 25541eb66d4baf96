// Package config loads environment configuration for the migration engine.
package config

import (
	"log/slog"
	"os"
	"strings"
)

// Supported extraction-capability providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderBedrock   = "bedrock"
)

// DefaultModel is the default extraction model selector. Fast and
// cost-effective; gpt-4o is the most accurate of the supported set.
const DefaultModel = "gpt-4o-mini"

// Config holds all configuration values.
type Config struct {
	// Extraction capability
	Provider        string
	Model           string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	OllamaHost      string

	// Rendering
	OutputDir string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Provider:        getEnv("SOPMIGRATE_PROVIDER", ProviderOpenAI),
		Model:           getEnv("SOPMIGRATE_MODEL", DefaultModel),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),

		OutputDir: getEnv("SOPMIGRATE_OUTPUT_DIR", "output_docs"),

		LogFile:  getEnv("SOPMIGRATE_LOG_FILE", "/tmp/sopmigrate.log"),
		LogLevel: parseLogLevel(getEnv("SOPMIGRATE_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
