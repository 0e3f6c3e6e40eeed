package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

const defaultCoins = "bitcoin,ethereum,cardano,dogecoin,solana"

type Config struct {
	Port              string
	FrontendURL       string
	NewsAPIKey        string
	CMCAPIKey         string
	CMCBaseURL        string
	GoogleCredentials string
	OpenAIKey         string
	AnthropicKey      string
	RedisURL          string
	DatabaseURL       string
	RefreshCoins      []string
	RefreshInterval   time.Duration
	CacheTTL          time.Duration
}

// Load reads the configuration from the environment, falling back to
// defaults. The cache TTL defaults to the refresh interval so an entry never
// outlives the next scheduled recompute.
func Load() Config {
	cfg := Config{
		Port:              getEnv("PORT", "5005"),
		FrontendURL:       os.Getenv("FRONTEND_URL"),
		NewsAPIKey:        os.Getenv("NEWS_API_KEY"),
		CMCAPIKey:         os.Getenv("CMC_API_KEY"),
		CMCBaseURL:        os.Getenv("CMC_API_BASE_URL"),
		GoogleCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		AnthropicKey:      os.Getenv("ANTHROPIC_API_KEY"),
		RedisURL:          os.Getenv("REDIS_URL"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RefreshCoins:      splitList(getEnv("REFRESH_COINS", defaultCoins)),
		RefreshInterval:   getDuration("REFRESH_INTERVAL", 12*time.Hour),
	}
	cfg.CacheTTL = getDuration("CACHE_TTL", cfg.RefreshInterval)
	return cfg
}

func getEnv(name, defaultValue string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(name string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "name", name, "value", value, "default", defaultValue)
		return defaultValue
	}
	return d
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
