package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/blake2b"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	AI        AIConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host          string
	Port          int
	Secure        bool   // Send HSTS
	Environment   string // "development", "production", "test"
	Debug         bool
	DebugMaxChars int
	LogLevel      string
	StaticDir     string // Built single-page UI
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type AIConfig struct {
	GeminiAPIKey    string
	GeminiModel     string
	GeminiBaseURL   string
	Temperature     float64
	MaxOutputTokens int
	MaxRetries      int
	RetryDelay      time.Duration
	HTTPTimeout     time.Duration
	Stub            bool
}

type RateLimitConfig struct {
	AIPerHour int64
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// KeyFingerprint identifies the configured API key in logs without
// revealing it. Empty when no key is set.
func (a AIConfig) KeyFingerprint() string {
	if strings.TrimSpace(a.GeminiAPIKey) == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(a.GeminiAPIKey))
	return hex.EncodeToString(sum[:4])
}

// Load reads configuration from the environment. Values in a .env file in
// the working directory are applied first but never override variables that
// are already set.
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:          getEnv("SERVER_HOST", "0.0.0.0"),
			Port:          getEnvInt("SERVER_PORT", 8080),
			Secure:        getEnvBool("SERVER_SECURE", false),
			Environment:   getEnv("APP_ENV", "development"),
			Debug:         getEnvBool("DEBUG", false),
			DebugMaxChars: getEnvInt("DEBUG_LOG_MAX_CHARS", 8000),
			LogLevel:      getEnv("LOG_LEVEL", "info"),
			StaticDir:     getEnv("STATIC_DIR", "web/dist"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "wellness"),
			Password: getEnv("DB_PASSWORD", "wellness"),
			DBName:   getEnv("DB_NAME", "wellness_tips"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		AI: AIConfig{
			GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
			GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			GeminiBaseURL:   getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1/models"),
			Temperature:     getEnvFloat("GEMINI_TEMPERATURE", 0.7),
			MaxOutputTokens: getEnvInt("GEMINI_MAX_OUTPUT_TOKENS", 2048),
			MaxRetries:      getEnvInt("AI_MAX_RETRIES", 3),
			RetryDelay:      getEnvDuration("AI_RETRY_DELAY", time.Second),
			HTTPTimeout:     getEnvDuration("AI_HTTP_TIMEOUT", 30*time.Second),
			Stub:            getEnvBool("AI_STUB", false),
		},
		RateLimit: RateLimitConfig{
			AIPerHour: int64(getEnvInt("AI_RATE_LIMIT", 60)),
		},
	}

	if cfg.AI.MaxRetries < 0 {
		cfg.AI.MaxRetries = 3
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
