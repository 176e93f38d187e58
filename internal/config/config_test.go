package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("GROQ_API_KEY", "test_groq_key")
	os.Setenv("ELEVENLABS_API_KEY", "test_eleven_key")
	defer os.Unsetenv("GROQ_API_KEY")
	defer os.Unsetenv("ELEVENLABS_API_KEY")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "test_groq_key", cfg.Generation.Groq.APIKey)
	assert.Equal(t, "test_eleven_key", cfg.TTS.ElevenLabs.APIKey)

	// Defaults
	assert.Equal(t, "groq", cfg.Generation.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Generation.Model)
	assert.Equal(t, 800, cfg.Generation.MaxTokens)
	assert.Equal(t, 0.8, cfg.Generation.Temperature)
	assert.Equal(t, "elevenlabs", cfg.TTS.Provider)
	assert.Equal(t, "eleven_multilingual_v2", cfg.TTS.ElevenLabs.Model)
	assert.Equal(t, 0.5, cfg.TTS.ElevenLabs.Stability)
	assert.Equal(t, 0.75, cfg.TTS.ElevenLabs.Similarity)
	assert.Equal(t, "nova", cfg.TTS.OpenAI.VoiceA)
	assert.Equal(t, "onyx", cfg.TTS.OpenAI.VoiceB)
	assert.Equal(t, 300, cfg.Pipeline.GapMs)
	assert.Equal(t, 2000, cfg.Pipeline.MaxSourceChars)
	assert.Equal(t, 1, cfg.Pipeline.Concurrency)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
}

func TestPipelineGap(t *testing.T) {
	cfg := &PipelineConfig{GapMs: 300}
	assert.Equal(t, 300*time.Millisecond, cfg.Gap())
}

func TestAppConfigMethods(t *testing.T) {
	cfg := &AppConfig{
		Env:      "development",
		LogLevel: "debug",
	}

	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.Env = "production"
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())
}

func TestValidateConfig(t *testing.T) {
	// Empty config misses required provider keys
	cfg := &Config{}
	err := validateConfig(cfg)
	assert.Error(t, err)

	// Unknown TTS provider is rejected
	cfg = validConfig()
	cfg.TTS.Provider = "festival"
	assert.Error(t, validateConfig(cfg))

	// Fallback provider requires its own key
	cfg = validConfig()
	cfg.TTS.Provider = "openai"
	cfg.TTS.OpenAI.APIKey = ""
	assert.Error(t, validateConfig(cfg))

	// Negative gap is rejected
	cfg = validConfig()
	cfg.Pipeline.GapMs = -1
	assert.Error(t, validateConfig(cfg))

	assert.NoError(t, validateConfig(validConfig()))
}

func validConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			Provider: "groq",
			Groq:     GroqConfig{APIKey: "key"},
		},
		TTS: TTSConfig{
			Provider:   "elevenlabs",
			ElevenLabs: ElevenLabsConfig{APIKey: "key"},
			OpenAI:     OpenAITTSConfig{APIKey: "key"},
		},
		Pipeline: PipelineConfig{
			GapMs:          300,
			MaxSourceChars: 2000,
			Concurrency:    1,
		},
	}
}
