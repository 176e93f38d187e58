package tts

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"synthetic-radio-host/internal/dialogue"
)

type fakeProvider struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeProvider) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, voiceID+"|"+text)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return []byte("audio:" + voiceID + ":" + text), nil
}

func (f *fakeProvider) Name() string { return "fake" }

func TestSynthesizerVoiceResolution(t *testing.T) {
	provider := &fakeProvider{}
	synth, err := NewSynthesizer(provider, "voice-a", "voice-b", zap.NewNop())
	require.NoError(t, err)

	audioA, err := synth.SynthesizeTurn(context.Background(), 0, dialogue.Turn{Speaker: dialogue.HostA, Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, []byte("audio:voice-a:hello"), audioA)

	audioB, err := synth.SynthesizeTurn(context.Background(), 1, dialogue.Turn{Speaker: dialogue.HostB, Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, []byte("audio:voice-b:hi"), audioB)
}

func TestSynthesizerRequiresBothVoices(t *testing.T) {
	_, err := NewSynthesizer(&fakeProvider{}, "voice-a", "", zap.NewNop())
	require.Error(t, err)

	_, err = NewSynthesizer(&fakeProvider{}, "", "voice-b", zap.NewNop())
	require.Error(t, err)
}

func TestSynthesizerCachesRepeatedUtterances(t *testing.T) {
	provider := &fakeProvider{}
	synth, err := NewSynthesizer(provider, "voice-a", "voice-b", zap.NewNop())
	require.NoError(t, err)

	turn := dialogue.Turn{Speaker: dialogue.HostA, Text: "exactly"}
	_, err = synth.SynthesizeTurn(context.Background(), 0, turn)
	require.NoError(t, err)
	_, err = synth.SynthesizeTurn(context.Background(), 4, turn)
	require.NoError(t, err)

	assert.Len(t, provider.calls, 1)

	// Same text with the other speaker is a different voice, not a cache hit.
	_, err = synth.SynthesizeTurn(context.Background(), 5, dialogue.Turn{Speaker: dialogue.HostB, Text: "exactly"})
	require.NoError(t, err)
	assert.Len(t, provider.calls, 2)
}

func TestSynthesizerAttachesTurnIndex(t *testing.T) {
	provider := &fakeProvider{
		err: &SynthesisError{Kind: KindAuthFailure, Provider: "fake", TurnIndex: -1, Err: fmt.Errorf("bad key")},
	}
	synth, err := NewSynthesizer(provider, "voice-a", "voice-b", zap.NewNop())
	require.NoError(t, err)

	_, err = synth.SynthesizeTurn(context.Background(), 3, dialogue.Turn{Speaker: dialogue.HostA, Text: "hello"})

	var synthErr *SynthesisError
	require.ErrorAs(t, err, &synthErr)
	assert.Equal(t, KindAuthFailure, synthErr.Kind)
	assert.Equal(t, 3, synthErr.TurnIndex)
}

func TestSynthesizerWrapsPlainErrors(t *testing.T) {
	provider := &fakeProvider{err: fmt.Errorf("boom")}
	synth, err := NewSynthesizer(provider, "voice-a", "voice-b", zap.NewNop())
	require.NoError(t, err)

	_, err = synth.SynthesizeTurn(context.Background(), 0, dialogue.Turn{Speaker: dialogue.HostB, Text: "hi"})

	var synthErr *SynthesisError
	require.ErrorAs(t, err, &synthErr)
	assert.Equal(t, KindProvider, synthErr.Kind)
	assert.Equal(t, 0, synthErr.TurnIndex)
}
