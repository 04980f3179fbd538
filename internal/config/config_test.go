package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("STORAGE_ROOT", "/srv/docs")
	t.Setenv("STORAGE_DRIVER", "minio")
	t.Setenv("MAX_UPLOAD_SIZE", "10MB")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "/srv/docs", cfg.Storage.Root)
	assert.Equal(t, DriverMinIO, cfg.Storage.Driver)
	assert.Equal(t, int64(10_000_000), cfg.Storage.MaxUploadBytes)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"STORAGE_ROOT", "STORAGE_DRIVER", "MAX_UPLOAD_SIZE", "PORT", "VERCEL", "CLIENT_DIR"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverLocal, cfg.Storage.Driver)
	assert.Equal(t, "uploads", cfg.Storage.Root)
	assert.Equal(t, int64(50_000_000), cfg.Storage.MaxUploadBytes)
	assert.Equal(t, filepath.Join("client", "dist"), cfg.ClientDir)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestDefaultStorageRoot(t *testing.T) {
	t.Setenv("VERCEL", "")
	assert.Equal(t, "uploads", DefaultStorageRoot())

	t.Setenv("VERCEL", "1")
	assert.Equal(t, filepath.Join(os.TempDir(), "uploads"), DefaultStorageRoot())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvBytes(t *testing.T) {
	key := "TEST_BYTES_VAR"

	os.Setenv(key, "2MiB")
	assert.Equal(t, int64(2*1024*1024), getEnvBytes(key, 0))

	os.Setenv(key, "4096")
	assert.Equal(t, int64(4096), getEnvBytes(key, 0))

	os.Setenv(key, "lots")
	assert.Equal(t, int64(10), getEnvBytes(key, 10))

	os.Setenv(key, "0")
	assert.Equal(t, int64(10), getEnvBytes(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, int64(10), getEnvBytes(key, 10))
}
