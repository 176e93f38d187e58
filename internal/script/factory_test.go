package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"synthetic-radio-host/internal/config"
)

func TestNewChatClient(t *testing.T) {
	logger := zap.NewNop()

	t.Run("groq", func(t *testing.T) {
		cfg := &config.GenerationConfig{
			Provider: "groq",
			Model:    "llama-3.3-70b-versatile",
			Groq:     config.GroqConfig{APIKey: "key"},
		}
		client, err := NewChatClient(cfg, logger)
		require.NoError(t, err)
		assert.Equal(t, "Groq", client.GetName())
	})

	t.Run("openrouter", func(t *testing.T) {
		cfg := &config.GenerationConfig{
			Provider:   "openrouter",
			OpenRouter: config.OpenRouterConfig{APIKey: "key"},
		}
		client, err := NewChatClient(cfg, logger)
		require.NoError(t, err)
		assert.Equal(t, "OpenRouter", client.GetName())
	})

	t.Run("unsupported", func(t *testing.T) {
		cfg := &config.GenerationConfig{Provider: "anthropic"}
		_, err := NewChatClient(cfg, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported generation provider")
	})
}
