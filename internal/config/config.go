// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	CORS     CORSConfig
	Autosave AutosaveConfig
	Lesson   LessonConfig
	PDF      PDFConfig
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port               int
	MaxRequestSize     int64
	RateLimitPerMinute int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// AutosaveConfig holds the autosave slot store settings
type AutosaveConfig struct {
	DBPath   string
	Interval time.Duration
}

// LessonConfig holds the values a new lesson starts with
type LessonConfig struct {
	Week            string
	Date            string
	ImagePathPrefix string
}

// PDFConfig holds headless Chrome printing settings
type PDFConfig struct {
	Enabled bool
	Timeout time.Duration
}

const (
	defaultMaxRequestSize = 50 * 1024 * 1024 // 50MB for data-URL uploads
	defaultRateLimit      = 100
)

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	// Server configuration
	serverPort, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Server.Port = serverPort

	maxRequestSize, err := intEnv("MAX_REQUEST_SIZE", defaultMaxRequestSize)
	if err != nil {
		return nil, err
	}
	if maxRequestSize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_SIZE must be positive")
	}
	cfg.Server.MaxRequestSize = int64(maxRequestSize)

	rateLimit, err := intEnv("RATE_LIMIT_PER_MINUTE", defaultRateLimit)
	if err != nil {
		return nil, err
	}
	cfg.Server.RateLimitPerMinute = rateLimit

	// Logging configuration
	cfg.Logging.Level = stringEnv("LOG_LEVEL", "info")

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// Autosave configuration
	cfg.Autosave.DBPath = stringEnv("AUTOSAVE_DB_PATH", "lessonbuilder.db")
	interval, err := durationEnv("AUTOSAVE_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	if interval < time.Second {
		return nil, fmt.Errorf("AUTOSAVE_INTERVAL must be at least 1s")
	}
	cfg.Autosave.Interval = interval

	// Lesson defaults
	cfg.Lesson.Week = strings.TrimSpace(os.Getenv("LESSON_WEEK"))
	cfg.Lesson.Date = stringEnv("LESSON_DATE", time.Now().Format("2006-01-02"))
	cfg.Lesson.ImagePathPrefix = stringEnv("IMAGE_PATH_PREFIX", "images/")

	// PDF configuration
	pdfEnabled, err := boolEnv("PDF_ENABLED", false)
	if err != nil {
		return nil, err
	}
	cfg.PDF.Enabled = pdfEnabled
	pdfTimeout, err := durationEnv("PDF_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.PDF.Timeout = pdfTimeout

	return cfg, nil
}

// AutosaveDSN returns the SQLite connection string of the autosave store
func (c *Config) AutosaveDSN() string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", c.Autosave.DBPath)
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// parseOrigins splits a comma-separated origin list.
// An empty list allows all origins.
func parseOrigins(raw string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
