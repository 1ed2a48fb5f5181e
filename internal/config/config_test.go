package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, ProviderAuto, cfg.LLMProvider)
	assert.Equal(t, 100, cfg.MessageCap)
	assert.Equal(t, 6, cfg.ContextWindow)
	assert.Equal(t, 60*time.Second, cfg.GenerationTimeout)
	assert.Equal(t, "assets/psychiatrists.csv", cfg.RosterCSVPath)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("MESSAGE_CAP", "50")
	t.Setenv("GENERATION_TIMEOUT_SECONDS", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, ProviderOllama, cfg.LLMProvider)
	assert.Equal(t, 50, cfg.MessageCap)
	assert.Equal(t, 30*time.Second, cfg.GenerationTimeout)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "bedrock")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveCap(t *testing.T) {
	t.Setenv("MESSAGE_CAP", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("MESSAGE_CAP", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.MessageCap)
}
