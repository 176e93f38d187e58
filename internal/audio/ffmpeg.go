package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FFmpegCodec drives the ffmpeg and ffprobe binaries.
type FFmpegCodec struct {
	logger *zap.Logger
}

// NewFFmpegCodec creates the codec. It fails if the required binaries are
// not on PATH so the pipeline can report a setup error before doing work.
func NewFFmpegCodec(logger *zap.Logger) (*FFmpegCodec, error) {
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			return nil, &AssemblyError{
				Kind: KindEncodingUnavailable,
				Err:  fmt.Errorf("%s not found on PATH: %w", bin, err),
			}
		}
	}
	return &FFmpegCodec{logger: logger}, nil
}

// Probe returns the playback duration of an audio file via ffprobe.
func (c *FFmpegCodec) Probe(ctx context.Context, path string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path)

	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for %s: %w", filepath.Base(path), err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", strings.TrimSpace(string(output)), err)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

// WriteSilence generates a silent MP3 of the given duration.
func (c *FFmpegCodec) WriteSilence(ctx context.Context, d time.Duration, path string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-f", "lavfi",
		"-i", "anullsrc=r=44100:cl=mono",
		"-t", fmt.Sprintf("%.3f", d.Seconds()),
		"-q:a", "9",
		"-acodec", "libmp3lame",
		"-y", path)

	if output, err := cmd.CombinedOutput(); err != nil {
		c.logger.Error("ffmpeg silence generation failed",
			zap.Duration("duration", d),
			zap.String("output", string(output)))
		return fmt.Errorf("failed to generate silence: %w", err)
	}
	return nil
}

// Concat joins the input MP3 files in order using the concat demuxer.
func (c *FFmpegCodec) Concat(ctx context.Context, inputs []string, out string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no inputs to concatenate")
	}

	listPath := out + ".list.txt"
	var list strings.Builder
	for _, input := range inputs {
		abs, err := filepath.Abs(input)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", input, err)
		}
		fmt.Fprintf(&list, "file '%s'\n", strings.ReplaceAll(abs, "'", `'\''`))
	}
	if err := os.WriteFile(listPath, []byte(list.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write concat list: %w", err)
	}
	defer os.Remove(listPath)

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-y", out)

	if output, err := cmd.CombinedOutput(); err != nil {
		c.logger.Error("ffmpeg concat failed",
			zap.Int("inputs", len(inputs)),
			zap.String("output", string(output)))
		return fmt.Errorf("failed to concatenate segments: %w", err)
	}
	return nil
}
