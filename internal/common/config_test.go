package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFixtureConfig() *Config {
	return &Config{
		Server: ServerConfig{HTTPAddr: ":8000"},
		LLM:    LLMConfig{Backend: "fixture"},
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("fixture backend needs no API key", func(t *testing.T) {
		assert.NoError(t, validFixtureConfig().Validate())
	})

	t.Run("openai backend with a key passes", func(t *testing.T) {
		cfg := validFixtureConfig()
		cfg.LLM.Backend = "openai"
		cfg.LLM.APIKey = "sk-test"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("openai backend without a key is a configuration error", func(t *testing.T) {
		cfg := validFixtureConfig()
		cfg.LLM.Backend = "openai"
		cfg.LLM.APIKey = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfiguration)

		var appErr *AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFIG_ERROR", appErr.Code)
		assert.Contains(t, appErr.Message, "OPENAI_API_KEY")
	})

	t.Run("unknown backend is a configuration error", func(t *testing.T) {
		cfg := validFixtureConfig()
		cfg.LLM.Backend = "ollama"

		err := cfg.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.Contains(t, err.Error(), `"ollama"`)
	})

	t.Run("missing HTTP address is a configuration error", func(t *testing.T) {
		cfg := validFixtureConfig()
		cfg.Server.HTTPAddr = ""
		assert.ErrorIs(t, cfg.Validate(), ErrConfiguration)
	})
}

func TestConfigValidateTaxonomy(t *testing.T) {
	// Configuration failures must never surface as backend or validation
	// errors; the HTTP layer maps them to distinct status codes.
	cfg := validFixtureConfig()
	cfg.LLM.Backend = "openai"

	err := cfg.Validate()
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrBackend))
	assert.False(t, errors.Is(err, ErrSchemaValidation))
}
