package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port        string
	Env         string
	CORSOrigins []string
	// TrustedProxies may set X-Forwarded-For. Empty trusts no proxy, so the
	// client IP is the socket peer.
	TrustedProxies []string

	// Logging
	LogLevel string
	LogDir   string

	// Database
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSL          bool
	DBMaxOpenConns int

	// Log ingestion rate limit
	LogRateLimit  int
	LogRateWindow time.Duration

	// Client
	APIURL string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port:           getEnv("PORT", "3000"),
		Env:            getEnv("ENV", "development"),
		CORSOrigins:    strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		TrustedProxies: getEnvList("TRUSTED_PROXIES"),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogDir:   getEnv("LOG_DIR", "logs"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "finmanager"),
		DBPassword: getEnv("DB_PASSWORD", "finmanager"),
		DBName:     getEnv("DB_NAME", "finmanager"),
		DBSSL:      getEnv("DB_SSL", "false") == "true",

		// Client
		APIURL: strings.TrimRight(getEnv("API_URL", "http://localhost:3000/api"), "/"),
	}

	config.DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 20)
	config.LogRateLimit = getEnvInt("LOG_RATE_LIMIT", 100)
	config.LogRateWindow = getEnvDuration("LOG_RATE_WINDOW", 15*time.Minute)

	return config, nil
}

// IsProduction reports whether the service runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable, dropping blank entries.
func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvInt(key string, defaultValue int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}
