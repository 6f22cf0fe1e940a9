package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the configuration for the application.
type Config struct {
	// Generation backend
	GeminiAPIKey string
	GeminiModel  string
	GroqAPIKey   string
	GroqModel    string

	// Redis (plan store, index, checked ledger, rate limiter)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// HTTP API
	Port      string
	JWTSecret string

	// Rate limiting for generation endpoints
	RateLimitRequests  int
	RateLimitWindowSec int

	// Token-usage metrics (SQLite)
	MetricsDBPath string

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
}

// NewFromEnv creates a new Config object from environment variables.
// At least one generation backend key must be present.
func NewFromEnv() (*Config, error) {
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	groqAPIKey := os.Getenv("GROQ_API_KEY")
	if geminiAPIKey == "" && groqAPIKey == "" {
		return nil, fmt.Errorf("neither GEMINI_API_KEY nor GROQ_API_KEY environment variable set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		redisDB = n
	}

	var allowedIDs []int64
	if v := os.Getenv("TELEGRAM_ALLOWED_USER_IDS"); v != "" {
		for _, part := range strings.Split(v, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS entry %q: %w", part, err)
			}
			allowedIDs = append(allowedIDs, id)
		}
	}

	return &Config{
		GeminiAPIKey:           geminiAPIKey,
		GeminiModel:            envOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GroqAPIKey:             groqAPIKey,
		GroqModel:              envOrDefault("GROQ_MODEL", "llama-3.3-70b-versatile"),
		RedisAddr:              envOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:                redisDB,
		Port:                   envOrDefault("PORT", "8080"),
		JWTSecret:              jwtSecret,
		RateLimitRequests:      envOrDefaultInt("RATE_LIMIT_REQUESTS", 10),
		RateLimitWindowSec:     envOrDefaultInt("RATE_LIMIT_WINDOW_SEC", 60),
		MetricsDBPath:          envOrDefault("METRICS_DB_PATH", "./data/weekplanner.db"),
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowedIDs,
	}, nil
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
