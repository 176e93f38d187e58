package tts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIService is the fallback speech provider. It is cheaper than the
// primary and expects voice names ("nova", "onyx") rather than voice IDs.
type OpenAIService struct {
	client *openai.Client
	speed  float64
	logger *zap.Logger
}

// NewOpenAIService creates the fallback provider. Speed outside the
// supported [0.25, 4.0] range is clamped.
func NewOpenAIService(apiKey string, speed float64, logger *zap.Logger) *OpenAIService {
	if speed < 0.25 {
		speed = 0.25
	}
	if speed > 4.0 {
		speed = 4.0
	}
	return &OpenAIService{
		client: openai.NewClient(apiKey),
		speed:  speed,
		logger: logger,
	}
}

// Synthesize converts text to MP3 audio with the given OpenAI voice name.
func (s *OpenAIService) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	if text == "" {
		return nil, &SynthesisError{
			Kind: KindProvider, Provider: s.Name(), VoiceID: voiceID, TurnIndex: -1,
			Err: fmt.Errorf("text is empty"),
		}
	}
	if voiceID == "" {
		return nil, &SynthesisError{
			Kind: KindInvalidVoice, Provider: s.Name(), VoiceID: voiceID, TurnIndex: -1,
			Err: fmt.Errorf("voice name is empty"),
		}
	}

	s.logger.Debug("sending TTS request to OpenAI",
		zap.String("voice", voiceID),
		zap.Int("text_length", len(text)))

	start := time.Now()
	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.TTSModel1,
		Input: text,
		Voice: openai.SpeechVoice(voiceID),
		Speed: s.speed,
	})
	if err != nil {
		return nil, &SynthesisError{
			Kind: s.classify(err), Provider: s.Name(), VoiceID: voiceID, TurnIndex: -1,
			Err: err,
		}
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
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

	s.logger.Debug("received audio from OpenAI",
		zap.String("voice", voiceID),
		zap.Int("audio_bytes", len(audio)),
		zap.Duration("duration", time.Since(start)))

	return audio, nil
}

func (s *OpenAIService) classify(err error) SynthesisErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return kindFromStatus(apiErr.HTTPStatusCode)
	}
	return KindProvider
}

// Name returns the provider name.
func (s *OpenAIService) Name() string {
	return "openai"
}
