package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/gigs")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_EXPIRES_MIN", "not-a-number")
	for _, k := range []string{"APP_PORT", "DRAFT_STORE", "DRAFT_TTL_MIN", "CATEGORY_CACHE_SEC", "UPLOAD_DIR"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 10080, cfg.JWTExpiresMin)
	assert.Equal(t, "redis", cfg.DraftStore)
	assert.Equal(t, 24*time.Hour, cfg.DraftTTL)
	assert.Equal(t, 5*time.Minute, cfg.CategoryCache)
	assert.Equal(t, "./uploads", cfg.UploadDir)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/gigs")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_BASE_URL", "https://api.example.com/")
	t.Setenv("DRAFT_STORE", "Memory")
	t.Setenv("DRAFT_TTL_MIN", "15")

	cfg := Load()

	assert.Equal(t, "https://api.example.com", cfg.AppBaseURL)
	assert.Equal(t, "memory", cfg.DraftStore)
	assert.Equal(t, 15*time.Minute, cfg.DraftTTL)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_SECRET", "secret")

	assert.PanicsWithValue(t, "missing env: DB_DSN", func() { Load() })
}
