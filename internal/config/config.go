package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort  string
	LogLevel string

	// Empty DSN/URL disables the corresponding optional surface.
	PostgresDSN string

	NATSURL          string
	NATSRunSubject   string
	NATSEventSubject string

	OpenAIBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string

	ClassifierStrategy string
	ItemDelayMS        int
	ProfilePath        string

	BreakerEnabled bool

	WorkerMetricsPort string
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		PostgresDSN: mustEnv("POSTGRES_DSN", ""),

		NATSURL:          mustEnv("NATS_URL", ""),
		NATSRunSubject:   mustEnv("NATS_RUN_SUBJECT", "catalog.runs"),
		NATSEventSubject: mustEnv("NATS_EVENT_SUBJECT", "catalog.events"),

		OpenAIBaseURL: mustEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIAPIKey:  mustEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   mustEnv("OPENAI_MODEL", "gpt-3.5-turbo"),

		ClassifierStrategy: mustEnv("CLASSIFIER_STRATEGY", "first-match"),
		ItemDelayMS:        mustEnvInt("ITEM_DELAY_MS", 500),
		ProfilePath:        mustEnv("PROFILE_PATH", ""),

		BreakerEnabled: mustEnvBool("BREAKER_ENABLED", true),

		WorkerMetricsPort: mustEnv("WORKER_METRICS_PORT", "9090"),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
