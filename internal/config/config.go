package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string
	Port        string
	GinMode     string
	CORSOrigins []string

	// Keyword catalog source
	DataDir      string
	KeywordsFile string

	// Column names in the keyword source table
	IDColumn      string
	EnNameColumn  string
	FrNamesColumn string
	IDFColumn     string

	// Auth gate (signature and expiry are validated, audience is not)
	JWTSecret string

	// Redis Configuration (rate limiting)
	RedisURL      string
	RedisPassword string
	RedisDB       int

	RateLimitReqs   int
	RateLimitWindow int

	// Periodic catalog reload; zero disables the schedule
	ReloadInterval time.Duration

	// Tracing
	TracingEnabled bool
	OTLPEndpoint   string
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "dev"),
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"), ","),

		DataDir:      getEnv("DATA_DIR", "./data"),
		KeywordsFile: getEnv("KEYWORDS_FILE", "global_keywords.csv"),

		IDColumn:      getEnv("KEYWORD_ID_COLUMN", "KeywordID"),
		EnNameColumn:  getEnv("KEYWORD_EN_COLUMN", "KeywordNamesEN"),
		FrNamesColumn: getEnv("KEYWORD_FR_COLUMN", "KeywordNamesFR"),
		IDFColumn:     getEnv("KEYWORD_IDF_COLUMN", "IDF"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		RateLimitReqs:   getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow: getEnvInt("RATE_LIMIT_WINDOW", 60),

		ReloadInterval: getEnvDuration("RELOAD_INTERVAL", 0),

		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		OTLPEndpoint:   getEnv("OTLP_ENDPOINT", "localhost:4317"),
	}

	// The test environment bypasses the auth gate entirely, so the secret
	// is only required outside of it.
	if cfg.AppEnv != "test" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required - set it in .env file")
	}

	return cfg, nil
}

// KeywordsPath returns the full path of the keyword source table.
func (c *Config) KeywordsPath() string {
	return filepath.Join(c.DataDir, c.KeywordsFile)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
