package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the configuration for integration tests.
// The autosave store points at TEST_AUTOSAVE_DB_PATH, or at a file inside dir
// when the variable is not set, so tests never touch a real autosave slot.
func LoadTestConfig(dir string) (*Config, error) {
	_ = godotenv.Load("./../../configs/.env")
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:               0,
			MaxRequestSize:     defaultMaxRequestSize,
			RateLimitPerMinute: 10000,
		},
		Logging: LoggingConfig{Level: "debug"},
		CORS:    CORSConfig{AllowedOrigins: []string{"*"}},
		Autosave: AutosaveConfig{
			DBPath:   filepath.Join(dir, "autosave_test.db"),
			Interval: time.Hour,
		},
		Lesson: LessonConfig{
			Week:            "1",
			Date:            "2024-01-08",
			ImagePathPrefix: "images/",
		},
		PDF: PDFConfig{Timeout: 30 * time.Second},
	}

	if path := os.Getenv("TEST_AUTOSAVE_DB_PATH"); path != "" {
		cfg.Autosave.DBPath = path
	}
	return cfg, nil
}
