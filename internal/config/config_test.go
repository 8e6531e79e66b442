package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("UPLOAD_MAX_BYTES", "lots")
	t.Setenv("LLM_MAX_TRIES", "")
	t.Setenv("LLM_TIMEOUT", "soon")

	cfg := FromEnv()
	assert.Equal(t, 10*1024*1024, cfg.App.UploadMaxBytes)
	assert.Equal(t, 1, cfg.LLM.MaxTries)
	assert.Equal(t, time.Duration(0), cfg.LLM.Timeout)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "8081")
	t.Setenv("GO_ENV", "production")
	t.Setenv("GOOGLE_API_KEY", "k")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("LLM_TIMEOUT", "30s")
	t.Setenv("LLM_MAX_TRIES", "3")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")

	cfg := FromEnv()
	assert.Equal(t, "8081", cfg.App.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 3, cfg.LLM.MaxTries)
	assert.Equal(t, 1024, cfg.App.UploadMaxBytes)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := &Config{App: AppConfig{UploadMaxBytes: 1}}
	assert.ErrorContains(t, cfg.Validate(), "GOOGLE_API_KEY")

	cfg.LLM.APIKey = "k"
	cfg.App.UploadMaxBytes = 0
	assert.ErrorContains(t, cfg.Validate(), "UPLOAD_MAX_BYTES")
}
