package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrigins(t *testing.T) {
	got := ParseOrigins(" https://app.example.com, ,https://admin.example.com,https://app.example.com")
	assert.Equal(t, []string{
		"https://app.example.com",
		"https://admin.example.com",
		"http://localhost:3000",
		"http://localhost:3002",
		"http://localhost:3001",
	}, got)

	assert.Equal(t, DevOrigins, ParseOrigins(""))
	assert.Len(t, ParseOrigins("http://localhost:3000"), len(DevOrigins))
}

func TestGetConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_URL", "ALLOWED_ORIGINS", "HISTORY_PATH", "READY_CACHE_TTL", "DB_MAX_OPEN_CONNS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg := GetConfig()
	assert.Equal(t, "8000", cfg.Port)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, "./data/history", cfg.HistoryPath)
	assert.Equal(t, 10*time.Second, cfg.ReadyCacheTTL)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, DevOrigins, cfg.AllowedOrigins)
}

func TestGetConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9191")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/invoices?sslmode=disable")
	t.Setenv("ALLOWED_ORIGINS", "https://dash.example.com")
	t.Setenv("READY_CACHE_TTL", "2s")

	cfg := GetConfig()
	assert.Equal(t, "9191", cfg.Port)
	assert.Equal(t, "postgres://u:p@db:5432/invoices?sslmode=disable", cfg.Database.URL)
	assert.Equal(t, "https://dash.example.com", cfg.AllowedOrigins[0])
	assert.Equal(t, 2*time.Second, cfg.ReadyCacheTTL)
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	os.Unsetenv("DATABASE_URL")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DATABASE_URL=postgres://from-env-file/db\n"), 0644))

	cfg := Load(path)
	assert.Equal(t, "postgres://from-env-file/db", cfg.Database.URL)
	os.Unsetenv("DATABASE_URL")
}

func TestLoadMissingEnvFile(t *testing.T) {
	t.Setenv("PORT", "7000")
	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, "7000", cfg.Port)
}
