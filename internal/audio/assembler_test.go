package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCodec assigns fixed durations by segment content and joins files by
// simple byte concatenation.
type fakeCodec struct {
	durations map[string]time.Duration
	probeErr  map[string]error
}

func newFakeCodec() *fakeCodec {
	return &fakeCodec{
		durations: make(map[string]time.Duration),
		probeErr:  make(map[string]error),
	}
}

func (c *fakeCodec) Probe(ctx context.Context, path string) (time.Duration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if err, ok := c.probeErr[string(data)]; ok {
		return 0, err
	}
	if d, ok := c.durations[string(data)]; ok {
		return d, nil
	}
	return time.Second, nil
}

func (c *fakeCodec) WriteSilence(ctx context.Context, d time.Duration, path string) error {
	return os.WriteFile(path, []byte(fmt.Sprintf("silence:%d", d.Milliseconds())), 0o644)
}

func (c *fakeCodec) Concat(ctx context.Context, inputs []string, out string) error {
	var joined []byte
	for _, input := range inputs {
		data, err := os.ReadFile(input)
		if err != nil {
			return err
		}
		joined = append(joined, data...)
	}
	return os.WriteFile(out, joined, 0o644)
}

func TestAssemble(t *testing.T) {
	codec := newFakeCodec()
	codec.durations["seg-a"] = 1000 * time.Millisecond
	codec.durations["seg-b"] = 1200 * time.Millisecond
	codec.durations["seg-c"] = 500 * time.Millisecond

	asm := NewAssembler(codec, 300*time.Millisecond, zap.NewNop())
	outPath := filepath.Join(t.TempDir(), "show.mp3")

	artifact, err := asm.Assemble(context.Background(), [][]byte{
		[]byte("seg-a"), []byte("seg-b"), []byte("seg-c"),
	}, outPath)

	require.NoError(t, err)
	assert.Equal(t, outPath, artifact.Path)
	// Three segments and two gaps: 1000 + 300 + 1200 + 300 + 500.
	assert.Equal(t, 3300*time.Millisecond, artifact.Duration)
	assert.Greater(t, artifact.Size, int64(0))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "seg-asilence:300seg-bsilence:300seg-c", string(data))
}

func TestAssembleSingleSegmentHasNoGap(t *testing.T) {
	codec := newFakeCodec()
	codec.durations["only"] = 2 * time.Second

	asm := NewAssembler(codec, 300*time.Millisecond, zap.NewNop())
	outPath := filepath.Join(t.TempDir(), "show.mp3")

	artifact, err := asm.Assemble(context.Background(), [][]byte{[]byte("only")}, outPath)

	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, artifact.Duration)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "only", string(data))
}

func TestAssembleZeroGap(t *testing.T) {
	codec := newFakeCodec()
	asm := NewAssembler(codec, 0, zap.NewNop())
	outPath := filepath.Join(t.TempDir(), "show.mp3")

	artifact, err := asm.Assemble(context.Background(), [][]byte{[]byte("a"), []byte("b")}, outPath)

	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, artifact.Duration)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(data))
}

func TestAssembleRenamesWithinOutputDir(t *testing.T) {
	codec := newFakeCodec()
	asm := NewAssembler(codec, 300*time.Millisecond, zap.NewNop())
	outDir := t.TempDir()
	outPath := filepath.Join(outDir, "show.mp3")

	_, err := asm.Assemble(context.Background(), [][]byte{[]byte("a"), []byte("b")}, outPath)
	require.NoError(t, err)

	// The work dir is created next to the output so the final move is a
	// same-device rename; only the artifact remains afterwards.
	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "show.mp3", entries[0].Name())
}

func TestAssembleLeavesNothingInOutputDirOnFailure(t *testing.T) {
	codec := newFakeCodec()
	codec.probeErr["broken"] = fmt.Errorf("invalid frame header")

	asm := NewAssembler(codec, 300*time.Millisecond, zap.NewNop())
	outDir := t.TempDir()

	_, err := asm.Assemble(context.Background(), [][]byte{[]byte("broken")}, filepath.Join(outDir, "show.mp3"))
	require.Error(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAssembleEmptyInput(t *testing.T) {
	asm := NewAssembler(newFakeCodec(), 300*time.Millisecond, zap.NewNop())

	_, err := asm.Assemble(context.Background(), nil, filepath.Join(t.TempDir(), "show.mp3"))

	var asmErr *AssemblyError
	require.ErrorAs(t, err, &asmErr)
	assert.Equal(t, KindEmptyInput, asmErr.Kind)
}

func TestAssembleCorruptSegment(t *testing.T) {
	codec := newFakeCodec()
	codec.probeErr["broken"] = fmt.Errorf("invalid frame header")

	asm := NewAssembler(codec, 300*time.Millisecond, zap.NewNop())
	outPath := filepath.Join(t.TempDir(), "show.mp3")

	_, err := asm.Assemble(context.Background(), [][]byte{
		[]byte("ok"), []byte("broken"), []byte("ok"),
	}, outPath)

	var asmErr *AssemblyError
	require.ErrorAs(t, err, &asmErr)
	assert.Equal(t, KindCorruptSegment, asmErr.Kind)
	assert.Equal(t, 1, asmErr.SegmentIndex)

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr), "no artifact may be left on failure")
}

func TestAssembleEmptySegmentBytes(t *testing.T) {
	asm := NewAssembler(newFakeCodec(), 300*time.Millisecond, zap.NewNop())

	_, err := asm.Assemble(context.Background(), [][]byte{[]byte("ok"), nil}, filepath.Join(t.TempDir(), "show.mp3"))

	var asmErr *AssemblyError
	require.ErrorAs(t, err, &asmErr)
	assert.Equal(t, KindCorruptSegment, asmErr.Kind)
	assert.Equal(t, 1, asmErr.SegmentIndex)
}
