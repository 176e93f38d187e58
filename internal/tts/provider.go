package tts

import (
	"context"
	"fmt"
)

// SynthesisErrorKind classifies a synthesis failure so callers can tell
// configuration problems apart from transient provider trouble.
type SynthesisErrorKind string

const (
	// KindAuthFailure means the API key was rejected.
	KindAuthFailure SynthesisErrorKind = "auth_failure"
	// KindQuotaExceeded means the provider rate-limited or exhausted credit.
	KindQuotaExceeded SynthesisErrorKind = "quota_exceeded"
	// KindInvalidVoice means the requested voice does not exist or the
	// request was rejected as malformed.
	KindInvalidVoice SynthesisErrorKind = "invalid_voice"
	// KindTimeout means the request exceeded its deadline.
	KindTimeout SynthesisErrorKind = "timeout"
	// KindProvider covers every other provider-side failure.
	KindProvider SynthesisErrorKind = "provider"
)

// SynthesisError describes a failed synthesis request. TurnIndex is -1 when
// the failure is not tied to a particular dialogue turn.
type SynthesisError struct {
	Kind      SynthesisErrorKind
	Provider  string
	VoiceID   string
	TurnIndex int
	Err       error
}

func (e *SynthesisError) Error() string {
	if e.TurnIndex >= 0 {
		return fmt.Sprintf("synthesis failed (%s, voice %s, turn %d): %s: %v",
			e.Provider, e.VoiceID, e.TurnIndex, e.Kind, e.Err)
	}
	return fmt.Sprintf("synthesis failed (%s, voice %s): %s: %v", e.Provider, e.VoiceID, e.Kind, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// SpeechProvider converts a single utterance into encoded MP3 audio.
type SpeechProvider interface {
	// Synthesize returns the audio bytes for the given text and voice.
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)

	// Name returns the provider name.
	Name() string
}

// kindFromStatus maps an HTTP status to a synthesis error kind.
func kindFromStatus(status int) SynthesisErrorKind {
	switch status {
	case 401, 403:
		return KindAuthFailure
	case 429:
		return KindQuotaExceeded
	case 400, 404, 422:
		return KindInvalidVoice
	default:
		return KindProvider
	}
}
