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

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	Env string // development, staging, production

	// External provider
	Eikon EikonConfig

	// Batch acquisition
	Batch BatchConfig

	// Market calendar
	Calendar CalendarConfig

	// Output
	OutputDir string

	// Logging
	LogLevel  string
	LogFormat string
}

// EikonConfig holds the Eikon desktop proxy configuration
type EikonConfig struct {
	AppKey         string
	BaseURL        string
	RequestTimeout time.Duration
}

// BatchConfig holds acquisition batch configuration
type BatchConfig struct {
	HorizonMonths int     // forward monthly expiries in the universe
	WindowPadDays int     // calendar days of padding before the target date
	RequestRate   float64 // requests per second, shared across workers
	RequestBurst  int
	MaxRetries    int
	RetryDelay    time.Duration
	Workers       int
	Schedule      string // cron expression for the daily batch
}

// CalendarConfig holds market holiday configuration
type CalendarConfig struct {
	Holidays    []string // YYYY-MM-DD
	CalendarURL string   // optional holiday calendar page, scraped at startup
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		Eikon: EikonConfig{
			AppKey:         getEnv("EIKON_APP_KEY", ""),
			BaseURL:        getEnv("EIKON_BASE_URL", "http://127.0.0.1:9000"),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", "30s"),
		},

		Batch: BatchConfig{
			HorizonMonths: getEnvAsInt("HORIZON_MONTHS", 25),
			WindowPadDays: getEnvAsInt("WINDOW_PAD_DAYS", 3),
			RequestRate:   getEnvAsFloat("REQUEST_RATE", 10),
			RequestBurst:  getEnvAsInt("REQUEST_BURST", 1),
			MaxRetries:    getEnvAsInt("MAX_RETRIES", 3),
			RetryDelay:    getEnvAsDuration("RETRY_DELAY", "1s"),
			Workers:       getEnvAsInt("WORKERS", 1),
			Schedule:      getEnv("BATCH_SCHEDULE", "0 0 7 * * MON-FRI"),
		},

		Calendar: CalendarConfig{
			Holidays:    getEnvAsList("MARKET_HOLIDAYS"),
			CalendarURL: getEnv("HOLIDAY_CALENDAR_URL", ""),
		},

		OutputDir: getEnv("OUTPUT_DIR", "output"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Eikon.AppKey == "" {
		return fmt.Errorf("EIKON_APP_KEY is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Batch.HorizonMonths < 1 {
		return fmt.Errorf("HORIZON_MONTHS must be at least 1")
	}

	// Single-day minute queries are rejected by the provider; the window must pad.
	if c.Batch.WindowPadDays < 2 {
		return fmt.Errorf("WINDOW_PAD_DAYS must be at least 2")
	}

	if c.Batch.RequestRate <= 0 {
		return fmt.Errorf("REQUEST_RATE must be positive")
	}

	if c.Batch.Workers < 1 {
		return fmt.Errorf("WORKERS must be at least 1")
	}

	for _, h := range c.Calendar.Holidays {
		if _, err := time.Parse("2006-01-02", h); err != nil {
			return fmt.Errorf("MARKET_HOLIDAYS entry %q is not YYYY-MM-DD", h)
		}
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsList(key string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return nil
	}

	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
