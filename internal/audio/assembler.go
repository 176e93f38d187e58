package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// AssemblyErrorKind classifies an assembly failure.
type AssemblyErrorKind string

const (
	// KindEmptyInput means there were no segments to assemble.
	KindEmptyInput AssemblyErrorKind = "empty_input"
	// KindCorruptSegment means a segment could not be decoded.
	KindCorruptSegment AssemblyErrorKind = "corrupt_segment"
	// KindEncodingUnavailable means the audio toolchain is missing.
	KindEncodingUnavailable AssemblyErrorKind = "encoding_unavailable"
)

// AssemblyError describes a failed assembly. SegmentIndex is -1 unless the
// failure is tied to a particular segment.
type AssemblyError struct {
	Kind         AssemblyErrorKind
	SegmentIndex int
	Err          error
}

func (e *AssemblyError) Error() string {
	if e.Kind == KindCorruptSegment {
		return fmt.Sprintf("audio assembly failed: %s (segment %d): %v", e.Kind, e.SegmentIndex, e.Err)
	}
	return fmt.Sprintf("audio assembly failed: %s: %v", e.Kind, e.Err)
}

func (e *AssemblyError) Unwrap() error {
	return e.Err
}

// Artifact describes the finished audio file.
type Artifact struct {
	Path     string
	Duration time.Duration
	Size     int64
}

// Assembler joins synthesized segments into one MP3, inserting a fixed
// silence gap between consecutive segments.
type Assembler struct {
	codec  Codec
	gap    time.Duration
	logger *zap.Logger
}

// NewAssembler creates an assembler. A zero gap disables silence insertion.
func NewAssembler(codec Codec, gap time.Duration, logger *zap.Logger) *Assembler {
	if gap < 0 {
		gap = 0
	}
	return &Assembler{
		codec:  codec,
		gap:    gap,
		logger: logger,
	}
}

// Assemble writes segments to disk, validates each one, joins them with
// gaps, and moves the result to outPath. The work dir lives next to outPath
// so the final rename is atomic; on any failure no file is left at outPath.
func (a *Assembler) Assemble(ctx context.Context, segments [][]byte, outPath string) (*Artifact, error) {
	if len(segments) == 0 {
		return nil, &AssemblyError{Kind: KindEmptyInput, SegmentIndex: -1, Err: fmt.Errorf("no segments")}
	}

	outDir := filepath.Dir(outPath)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	workDir, err := os.MkdirTemp(outDir, ".assemble-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	// Write and probe every segment before joining anything, so a corrupt
	// segment is reported with its index instead of as a concat failure.
	var total time.Duration
	segmentPaths := make([]string, len(segments))
	for i, segment := range segments {
		if len(segment) == 0 {
			return nil, &AssemblyError{Kind: KindCorruptSegment, SegmentIndex: i, Err: fmt.Errorf("segment is empty")}
		}
		path := filepath.Join(workDir, fmt.Sprintf("segment_%03d.mp3", i))
		if err := os.WriteFile(path, segment, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write segment %d: %w", i, err)
		}
		d, err := a.codec.Probe(ctx, path)
		if err != nil {
			return nil, &AssemblyError{Kind: KindCorruptSegment, SegmentIndex: i, Err: err}
		}
		total += d
		segmentPaths[i] = path
	}

	inputs := segmentPaths
	if a.gap > 0 && len(segments) > 1 {
		gapPath := filepath.Join(workDir, "gap.mp3")
		if err := a.codec.WriteSilence(ctx, a.gap, gapPath); err != nil {
			return nil, fmt.Errorf("failed to write gap: %w", err)
		}

		inputs = make([]string, 0, 2*len(segmentPaths)-1)
		for i, path := range segmentPaths {
			if i > 0 {
				inputs = append(inputs, gapPath)
			}
			inputs = append(inputs, path)
		}
		total += time.Duration(len(segments)-1) * a.gap
	}

	joined := filepath.Join(workDir, "joined.mp3")
	if err := a.codec.Concat(ctx, inputs, joined); err != nil {
		return nil, fmt.Errorf("failed to join segments: %w", err)
	}

	// Stat before the rename so a stat failure cannot strand an artifact.
	info, err := os.Stat(joined)
	if err != nil {
		return nil, fmt.Errorf("failed to stat artifact: %w", err)
	}
	if err := os.Rename(joined, outPath); err != nil {
		return nil, fmt.Errorf("failed to move artifact: %w", err)
	}

	a.logger.Info("audio assembled",
		zap.String("path", outPath),
		zap.Int("segments", len(segments)),
		zap.Duration("duration", total),
		zap.Int64("size_bytes", info.Size()))

	return &Artifact{
		Path:     outPath,
		Duration: total,
		Size:     info.Size(),
	}, nil
}
