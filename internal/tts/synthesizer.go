package tts

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"synthetic-radio-host/internal/dialogue"
)

// Synthesizer maps dialogue speakers to provider voices and synthesizes
// one turn at a time. Repeated utterances of the same text with the same
// voice reuse the cached audio within a run.
type Synthesizer struct {
	provider SpeechProvider
	voices   map[dialogue.Speaker]string
	logger   *zap.Logger

	mu    sync.Mutex
	cache map[cacheKey][]byte
}

type cacheKey struct {
	voiceID string
	text    string
}

// NewSynthesizer creates a synthesizer. Every speaker that can appear in a
// parsed dialogue must have a voice; a missing mapping is a setup error.
func NewSynthesizer(provider SpeechProvider, voiceA, voiceB string, logger *zap.Logger) (*Synthesizer, error) {
	if voiceA == "" || voiceB == "" {
		return nil, fmt.Errorf("both speaker voices must be set (voice A: %q, voice B: %q)", voiceA, voiceB)
	}
	return &Synthesizer{
		provider: provider,
		voices: map[dialogue.Speaker]string{
			dialogue.HostA: voiceA,
			dialogue.HostB: voiceB,
		},
		logger: logger,
		cache:  make(map[cacheKey][]byte),
	}, nil
}

// SynthesizeTurn produces audio for one dialogue turn. The returned error
// carries the turn index for pipeline-level reporting.
func (s *Synthesizer) SynthesizeTurn(ctx context.Context, index int, turn dialogue.Turn) ([]byte, error) {
	voiceID, ok := s.voices[turn.Speaker]
	if !ok {
		return nil, &SynthesisError{
			Kind: KindInvalidVoice, Provider: s.provider.Name(), TurnIndex: index,
			Err: fmt.Errorf("no voice mapped for speaker %s", turn.Speaker),
		}
	}

	key := cacheKey{voiceID: voiceID, text: turn.Text}
	s.mu.Lock()
	cached, hit := s.cache[key]
	s.mu.Unlock()
	if hit {
		s.logger.Debug("synthesis cache hit",
			zap.Int("turn", index),
			zap.String("voice_id", voiceID))
		return cached, nil
	}

	audio, err := s.provider.Synthesize(ctx, turn.Text, voiceID)
	if err != nil {
		var synthErr *SynthesisError
		if errors.As(err, &synthErr) {
			synthErr.TurnIndex = index
			return nil, synthErr
		}
		return nil, &SynthesisError{
			Kind: KindProvider, Provider: s.provider.Name(), VoiceID: voiceID, TurnIndex: index,
			Err: err,
		}
	}

	s.mu.Lock()
	s.cache[key] = audio
	s.mu.Unlock()

	return audio, nil
}
