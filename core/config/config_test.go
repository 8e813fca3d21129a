package config_test

import (
	"testing"

	"devserver/core/config"
	"devserver/core/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(".")

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, ".", cfg.Server.Root)
	assert.False(t, cfg.Server.Isolated)
	assert.Equal(t, server.EmbedderCredentialless, cfg.Server.EmbedderPolicy)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_ISOLATED", "true")
	t.Setenv("SERVER_EMBEDDER_POLICY", server.EmbedderRequireCorp)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.LoadConfig(".")

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.True(t, cfg.Server.Isolated)
	assert.Equal(t, server.EmbedderRequireCorp, cfg.Server.EmbedderPolicy)
	assert.Equal(t, "debug", cfg.Log.Level)
}
