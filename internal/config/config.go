// Package config loads process configuration from the environment.
package config

import (
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"stockledger/internal/logger"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBAutoMigrate bool

	// Identity provider tokens
	JWTSecret string
	JWTIssuer string

	// Market data
	FinnhubAPIKey    string
	FinnhubBaseURL   string
	QuoteTimeout     time.Duration
	QuoteCacheTTL    time.Duration
	QuoteConcurrency int
	YahooFallback    bool
	YahooBaseURL     string
}

// Load loads configuration from environment variables, reading a .env file
// first when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Get().Debug(".env file not found, using process environment")
	}

	return &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "stockledger"),
		DBPassword:    getEnv("DB_PASSWORD", "stockledger"),
		DBName:        getEnv("DB_NAME", "stockledger"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		DBAutoMigrate: getBool("DB_AUTOMIGRATE", false),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		JWTIssuer: getEnv("JWT_ISSUER", ""),

		FinnhubAPIKey:    getEnv("FINNHUB_API_KEY", ""),
		FinnhubBaseURL:   getEnv("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"),
		QuoteTimeout:     getDuration("QUOTE_TIMEOUT", 10*time.Second),
		QuoteCacheTTL:    getDuration("QUOTE_CACHE_TTL", time.Minute),
		QuoteConcurrency: getInt("QUOTE_CONCURRENCY", 8),
		YahooFallback:    getBool("YAHOO_FALLBACK", false),
		YahooBaseURL:     getEnv("YAHOO_BASE_URL", ""),
	}, nil
}

// DatabaseURL returns the postgres:// URL used by golang-migrate.
// User, password and database name are escaped.
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
	return u.String()
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		logger.Get().Warnf("invalid %s value '%s', falling back to %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		logger.Get().Warnf("invalid %s value '%s', falling back to %d", key, raw, defaultValue)
		return defaultValue
	}
	return n
}

func getBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		logger.Get().Warnf("invalid %s value '%s', falling back to %t", key, raw, defaultValue)
		return defaultValue
	}
	return b
}
