package audio

import (
	"context"
	"time"
)

// Codec abstracts the external audio toolchain so assembly logic can be
// tested without ffmpeg installed.
type Codec interface {
	// Probe returns the playback duration of the audio file at path.
	Probe(ctx context.Context, path string) (time.Duration, error)

	// WriteSilence writes a silent MP3 of duration d to path.
	WriteSilence(ctx context.Context, d time.Duration, path string) error

	// Concat concatenates the input files in order into out.
	Concat(ctx context.Context, inputs []string, out string) error
}
