package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// ElevenLabsService is the primary speech provider. It uses the
// multilingual model so code-switched dialogue keeps natural prosody.
type ElevenLabsService struct {
	apiKey     string
	baseURL    string
	model      string
	settings   VoiceSettings
	httpClient *http.Client
	logger     *zap.Logger
}

// VoiceSettings are the ElevenLabs naturalness knobs. All values live in
// [0.0, 1.0] and are clamped at construction.
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// NewElevenLabsService creates the primary provider.
func NewElevenLabsService(apiKey, baseURL, model string, settings VoiceSettings, logger *zap.Logger) *ElevenLabsService {
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io"
	}
	if model == "" {
		model = "eleven_multilingual_v2"
	}

	settings.Stability = clamp01(settings.Stability)
	settings.SimilarityBoost = clamp01(settings.SimilarityBoost)
	settings.Style = clamp01(settings.Style)

	return &ElevenLabsService{
		apiKey:   apiKey,
		baseURL:  baseURL,
		model:    model,
		settings: settings,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// DefaultVoiceSettings matches the tuned values for two-host dialogue.
func DefaultVoiceSettings() VoiceSettings {
	return VoiceSettings{
		Stability:       0.5,
		SimilarityBoost: 0.75,
		Style:           0.5,
		UseSpeakerBoost: true,
	}
}

type elevenLabsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

// Synthesize converts text to MP3 audio with the given ElevenLabs voice.
func (s *ElevenLabsService) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	if text == "" {
		return nil, &SynthesisError{
			Kind: KindProvider, Provider: s.Name(), VoiceID: voiceID, TurnIndex: -1,
			Err: fmt.Errorf("text is empty"),
		}
	}
	if voiceID == "" {
		return nil, &SynthesisError{
			Kind: KindInvalidVoice, Provider: s.Name(), VoiceID: voiceID, TurnIndex: -1,
			Err: fmt.Errorf("voice id is empty"),
		}
	}

	request := elevenLabsRequest{
		Text:          text,
		ModelID:       s.model,
		VoiceSettings: s.settings,
	}

	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, &SynthesisError{
			Kind: KindProvider, Provider: s.Name(), VoiceID: voiceID, TurnIndex: -1,
			Err: fmt.Errorf("failed to marshal request: %w", err),
		}
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s", s.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return nil, &SynthesisError{
			Kind: KindProvider, Provider: s.Name(), VoiceID: voiceID, TurnIndex: -1,
			Err: fmt.Errorf("failed to create HTTP request: %w", err),
		}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", s.apiKey)

	s.logger.Debug("sending TTS request to ElevenLabs",
		zap.String("voice_id", voiceID),
		zap.Int("text_length", len(text)))

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		kind := KindProvider
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			kind = KindTimeout
		}
		return nil, &SynthesisError{
			Kind: kind, Provider: s.Name(), VoiceID: voiceID, TurnIndex: -1,
			Err: fmt.Errorf("failed to send request: %w", err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		s.logger.Error("ElevenLabs API error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("voice_id", voiceID),
			zap.String("response", string(body)))
		return nil, &SynthesisError{
			Kind: kindFromStatus(resp.StatusCode), Provider: s.Name(), VoiceID: voiceID, TurnIndex: -1,
			Err: fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body)),
		}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SynthesisError{
			Kind: KindProvider, Provider: s.Name(), VoiceID: voiceID, TurnIndex: -1,
			Err: fmt.Errorf("failed to read audio: %w", err),
		}
	}
	if len(audio) == 0 {
		return nil, &SynthesisError{
			Kind: KindProvider, Provider: s.Name(), VoiceID: voiceID, TurnIndex: -1,
			Err: fmt.Errorf("provider returned empty audio"),
		}
	}

	s.logger.Debug("received audio from ElevenLabs",
		zap.String("voice_id", voiceID),
		zap.Int("audio_bytes", len(audio)),
		zap.Duration("duration", time.Since(start)))

	return audio, nil
}

// Name returns the provider name.
func (s *ElevenLabsService) Name() string {
	return "elevenlabs"
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
