package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"pdf-toolbox/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort     string
	UploadPath     string
	MaxFileSize    int64
	LogLevel       string
	QPDFPath       string
	AllowedOrigins []string
	SplitRetention time.Duration
	BatchRetention time.Duration
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:  getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		UploadPath:  getEnvOrDefault("UPLOAD_PATH", "./uploads"),
		MaxFileSize: getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		QPDFPath:    getEnvOrDefault("QPDF_PATH", "qpdf"),
		AllowedOrigins: splitAndTrim(getEnvOrDefault("ALLOWED_ORIGINS",
			"http://localhost:5173,http://localhost:4173,http://localhost:3000")),
		SplitRetention: getEnvDurationOrDefault("SPLIT_RETENTION", time.Hour),
		BatchRetention: getEnvDurationOrDefault("BATCH_RETENTION", 24*time.Hour),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetUploadPath returns the upload directory path
func (c *AppConfig) GetUploadPath() string {
	return c.UploadPath
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetQPDFPath returns the qpdf binary path
func (c *AppConfig) GetQPDFPath() string {
	return c.QPDFPath
}

// GetAllowedOrigins returns the CORS allowed origins
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// GetSplitRetention returns how long split outputs are kept before deletion
func (c *AppConfig) GetSplitRetention() time.Duration {
	return c.SplitRetention
}

// GetBatchRetention returns how long image batches and their zip are kept
func (c *AppConfig) GetBatchRetention() time.Duration {
	return c.BatchRetention
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
