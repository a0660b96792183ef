package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxSize)
	assert.Equal(t, []string{"text/plain"}, cfg.Upload.AllowedTypes)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
}

func TestLoadConfigEnvOverridesNestedKeys(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("DATABASE_PASSWORD", "hunter2")
	t.Setenv("UPLOAD_MAX_SIZE", "1024")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_MODEL", "gpt-4o")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "hunter2", cfg.Database.Password)
	assert.Equal(t, int64(1024), cfg.Upload.MaxSize)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "70000")

	_, err := LoadConfig()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
