package tts

import (
	"fmt"

	"go.uber.org/zap"

	"synthetic-radio-host/internal/config"
)

// NewSpeechProvider creates the speech provider selected by configuration.
func NewSpeechProvider(cfg *config.TTSConfig, logger *zap.Logger) (SpeechProvider, error) {
	switch cfg.Provider {
	case "elevenlabs":
		settings := VoiceSettings{
			Stability:       cfg.ElevenLabs.Stability,
			SimilarityBoost: cfg.ElevenLabs.Similarity,
			Style:           cfg.ElevenLabs.Style,
			UseSpeakerBoost: true,
		}
		return NewElevenLabsService(cfg.ElevenLabs.APIKey, cfg.ElevenLabs.BaseURL, cfg.ElevenLabs.Model, settings, logger), nil
	case "openai":
		return NewOpenAIService(cfg.OpenAI.APIKey, cfg.OpenAI.Speed, logger), nil
	default:
		return nil, fmt.Errorf("unsupported TTS provider: %s (supported: 'elevenlabs', 'openai')", cfg.Provider)
	}
}

// VoicesFor returns the two-speaker voice mapping for the selected provider.
func VoicesFor(cfg *config.TTSConfig) (voiceA, voiceB string, err error) {
	switch cfg.Provider {
	case "elevenlabs":
		return ResolveVoice(cfg.ElevenLabs.VoiceA), ResolveVoice(cfg.ElevenLabs.VoiceB), nil
	case "openai":
		return cfg.OpenAI.VoiceA, cfg.OpenAI.VoiceB, nil
	default:
		return "", "", fmt.Errorf("unsupported TTS provider: %s", cfg.Provider)
	}
}
