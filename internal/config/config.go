package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
)

const (
	DriverLocal = "local"
	DriverMinIO = "minio"
)

// StorageConfig selects and configures the document storage backend.
type StorageConfig struct {
	Driver string
	// Root is the base directory for the local driver. All category/type folders live under it.
	Root           string
	MaxUploadBytes int64
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost   string
	Port      string
	ClientDir string
	Storage   StorageConfig
	MinIO     MinIOConfig
	Log       LogConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:   getEnv("APP_HOST", "localhost:8080"),
		Port:      getEnv("PORT", "8080"),
		ClientDir: getEnv("CLIENT_DIR", filepath.Join("client", "dist")),
		Storage: StorageConfig{
			Driver:         getEnv("STORAGE_DRIVER", DriverLocal),
			Root:           getEnv("STORAGE_ROOT", DefaultStorageRoot()),
			MaxUploadBytes: getEnvBytes("MAX_UPLOAD_SIZE", 50*humanize.MByte),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// DefaultStorageRoot is a persistent ./uploads directory, or a temp directory on
// serverless hosts (VERCEL set) where only the temp dir is writable.
func DefaultStorageRoot() string {
	if os.Getenv("VERCEL") != "" {
		return filepath.Join(os.TempDir(), "uploads")
	}
	return "uploads"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

// getEnvBytes accepts sizes like "25MB", "1GiB" or a plain byte count.
func getEnvBytes(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		n, err := humanize.ParseBytes(v)
		if err == nil && n > 0 {
			return int64(n)
		}
	}
	return def
}
