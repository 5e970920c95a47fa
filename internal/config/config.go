package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	API     APIConfig
	Preview PreviewConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// APIConfig locates the book-tracking REST API this frontend consumes.
type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// PreviewConfig controls the local spool for optimistic profile-image
// previews.
type PreviewConfig struct {
	Dir string
	TTL time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 3000),
			ReadTimeout:  time.Duration(getEnvAsInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvAsInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
		},
		API: APIConfig{
			BaseURL:        getEnv("BOOKAPI_BASE_URL", "http://localhost:8000"),
			RequestTimeout: time.Duration(getEnvAsInt("BOOKAPI_REQUEST_TIMEOUT", 30)) * time.Second,
		},
		Preview: PreviewConfig{
			Dir: getEnv("PREVIEW_DIR", "previews"),
			TTL: time.Duration(getEnvAsInt("PREVIEW_TTL_HOURS", 24)) * time.Hour,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
