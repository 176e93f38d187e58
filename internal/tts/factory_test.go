package tts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"synthetic-radio-host/internal/config"
)

func TestNewSpeechProvider(t *testing.T) {
	logger := zap.NewNop()

	t.Run("elevenlabs", func(t *testing.T) {
		cfg := &config.TTSConfig{
			Provider: "elevenlabs",
			ElevenLabs: config.ElevenLabsConfig{
				APIKey:     "key",
				Stability:  0.5,
				Similarity: 0.75,
				Style:      0.5,
			},
		}
		provider, err := NewSpeechProvider(cfg, logger)
		require.NoError(t, err)
		assert.Equal(t, "elevenlabs", provider.Name())
	})

	t.Run("openai", func(t *testing.T) {
		cfg := &config.TTSConfig{
			Provider: "openai",
			OpenAI:   config.OpenAITTSConfig{APIKey: "key", Speed: 1.0},
		}
		provider, err := NewSpeechProvider(cfg, logger)
		require.NoError(t, err)
		assert.Equal(t, "openai", provider.Name())
	})

	t.Run("unsupported", func(t *testing.T) {
		cfg := &config.TTSConfig{Provider: "piper"}
		_, err := NewSpeechProvider(cfg, logger)
		require.Error(t, err)
	})
}

func TestVoicesFor(t *testing.T) {
	cfg := &config.TTSConfig{
		Provider:   "elevenlabs",
		ElevenLabs: config.ElevenLabsConfig{VoiceA: "21m00Tcm4TlvDq8ikWAM", VoiceB: "pNInz6obpgDQGcFmaJgB"},
		OpenAI:     config.OpenAITTSConfig{VoiceA: "nova", VoiceB: "onyx"},
	}

	a, b, err := VoicesFor(cfg)
	require.NoError(t, err)
	assert.Equal(t, "21m00Tcm4TlvDq8ikWAM", a)
	assert.Equal(t, "pNInz6obpgDQGcFmaJgB", b)

	cfg.Provider = "openai"
	a, b, err = VoicesFor(cfg)
	require.NoError(t, err)
	assert.Equal(t, "nova", a)
	assert.Equal(t, "onyx", b)

	cfg.Provider = "other"
	_, _, err = VoicesFor(cfg)
	require.Error(t, err)
}

func TestVoicesForResolvesCatalogNames(t *testing.T) {
	cfg := &config.TTSConfig{
		Provider:   "elevenlabs",
		ElevenLabs: config.ElevenLabsConfig{VoiceA: "Priya", VoiceB: "Rohan"},
	}

	a, b, err := VoicesFor(cfg)
	require.NoError(t, err)
	assert.Equal(t, "jsCqWAovK2LkecY7zXl4", a)
	assert.Equal(t, "ErXwobaYiN019PkySvjV", b)
}

func TestResolveVoicePassesThroughRawIDs(t *testing.T) {
	assert.Equal(t, "21m00Tcm4TlvDq8ikWAM", ResolveVoice("Rachel"))
	assert.Equal(t, "custom-voice-id", ResolveVoice("custom-voice-id"))
}
