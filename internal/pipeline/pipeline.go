package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"synthetic-radio-host/internal/audio"
	"synthetic-radio-host/internal/dialogue"
	"synthetic-radio-host/internal/metrics"
)

// Stage identifies a step of the pipeline.
type Stage string

const (
	StageIdle         Stage = "idle"
	StageGenerating   Stage = "generating"
	StageParsing      Stage = "parsing"
	StageSynthesizing Stage = "synthesizing"
	StageAssembling   Stage = "assembling"
	StageDone         Stage = "done"
	StageFailed       Stage = "failed"
)

// StageError wraps a failure with the stage it happened in. A run stops at
// the first failing stage; later stages are never attempted.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline failed at %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Request describes one pipeline run.
type Request struct {
	SourceText string
	OutputPath string
}

// Result is the outcome of a successful run.
type Result struct {
	RunID      string
	ScriptText string
	Turns      []dialogue.Turn
	Artifact   *audio.Artifact
}

// Progress is called after each stage transition and after each synthesized
// turn. done and total are zero outside the synthesizing stage.
type Progress func(stage Stage, done, total int)

// ScriptGenerator produces raw script text from article text.
type ScriptGenerator interface {
	Generate(ctx context.Context, sourceText string) (string, error)
}

// TurnSynthesizer produces audio for one dialogue turn.
type TurnSynthesizer interface {
	SynthesizeTurn(ctx context.Context, index int, turn dialogue.Turn) ([]byte, error)
}

// AudioAssembler joins synthesized segments into the final artifact.
type AudioAssembler interface {
	Assemble(ctx context.Context, segments [][]byte, outPath string) (*audio.Artifact, error)
}

// Pipeline runs the four stages in order: generate, parse, synthesize,
// assemble. One run produces one artifact; there is no resume.
type Pipeline struct {
	generator   ScriptGenerator
	parser      *dialogue.Parser
	synthesizer TurnSynthesizer
	assembler   AudioAssembler
	concurrency int
	turnTimeout time.Duration
	ttsProvider string
	metrics     *metrics.Metrics
	progress    Progress
	logger      *zap.Logger
}

// Option configures a pipeline.
type Option func(*Pipeline)

// WithConcurrency bounds how many turns are synthesized in parallel.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n >= 1 {
			p.concurrency = n
		}
	}
}

// WithTurnTimeout bounds each synthesis call. Zero means no per-call bound.
func WithTurnTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.turnTimeout = d
		}
	}
}

// WithMetrics enables metric recording. The provider name labels TTS
// counters.
func WithMetrics(m *metrics.Metrics, ttsProvider string) Option {
	return func(p *Pipeline) {
		p.metrics = m
		p.ttsProvider = ttsProvider
	}
}

// WithProgress installs a progress callback.
func WithProgress(fn Progress) Option {
	return func(p *Pipeline) {
		p.progress = fn
	}
}

// New creates a pipeline.
func New(generator ScriptGenerator, parser *dialogue.Parser, synthesizer TurnSynthesizer, assembler AudioAssembler, logger *zap.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		generator:   generator,
		parser:      parser,
		synthesizer: synthesizer,
		assembler:   assembler,
		concurrency: 1,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one pipeline run. On failure it returns a *StageError and
// leaves no artifact at the output path.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.New().String()
	logger := p.logger.With(zap.String("run_id", runID))

	if strings.TrimSpace(req.SourceText) == "" {
		return nil, p.fail(StageGenerating, fmt.Errorf("source text is empty"))
	}
	if req.OutputPath == "" {
		return nil, p.fail(StageAssembling, fmt.Errorf("output path is empty"))
	}

	logger.Info("pipeline run started",
		zap.Int("source_chars", len(req.SourceText)),
		zap.String("output", req.OutputPath))

	// Generating
	p.report(StageGenerating, 0, 0)
	start := time.Now()
	scriptText, err := p.generator.Generate(ctx, req.SourceText)
	if err != nil {
		return nil, p.fail(StageGenerating, err)
	}
	p.recordStage(StageGenerating, start)

	// Parsing
	p.report(StageParsing, 0, 0)
	start = time.Now()
	turns, err := p.parser.Parse(scriptText)
	if err != nil {
		return nil, p.fail(StageParsing, err)
	}
	p.recordStage(StageParsing, start)
	if p.metrics != nil {
		p.metrics.RecordScript(len(turns))
	}
	logger.Info("script parsed", zap.Int("turns", len(turns)))

	// Synthesizing
	p.report(StageSynthesizing, 0, len(turns))
	start = time.Now()
	segments, err := p.synthesize(ctx, turns)
	if err != nil {
		return nil, p.fail(StageSynthesizing, err)
	}
	p.recordStage(StageSynthesizing, start)

	// Assembling
	p.report(StageAssembling, 0, 0)
	start = time.Now()
	artifact, err := p.assembler.Assemble(ctx, segments, req.OutputPath)
	if err != nil {
		return nil, p.fail(StageAssembling, err)
	}
	p.recordStage(StageAssembling, start)

	p.report(StageDone, 0, 0)
	if p.metrics != nil {
		p.metrics.RecordRun("done")
		p.metrics.RecordArtifact(artifact.Duration.Seconds())
	}

	logger.Info("pipeline run finished",
		zap.String("artifact", artifact.Path),
		zap.Duration("duration", artifact.Duration),
		zap.Int64("size_bytes", artifact.Size))

	return &Result{
		RunID:      runID,
		ScriptText: scriptText,
		Turns:      turns,
		Artifact:   artifact,
	}, nil
}

// synthesize converts every turn to audio, at most concurrency turns in
// flight. Segments land at their turn index, so output order never depends
// on completion order. The first failure cancels the remaining work.
func (p *Pipeline) synthesize(ctx context.Context, turns []dialogue.Turn) ([][]byte, error) {
	segments := make([][]byte, len(turns))
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	results := make(chan int, len(turns))
	for i, turn := range turns {
		i, turn := i, turn
		g.Go(func() error {
			turnCtx := gctx
			if p.turnTimeout > 0 {
				var cancel context.CancelFunc
				turnCtx, cancel = context.WithTimeout(gctx, p.turnTimeout)
				defer cancel()
			}
			audioBytes, err := p.synthesizer.SynthesizeTurn(turnCtx, i, turn)
			if p.metrics != nil {
				p.metrics.RecordTTSRequest(p.ttsProvider, err == nil, len(turn.Text))
			}
			if err != nil {
				return err
			}
			segments[i] = audioBytes
			results <- i
			return nil
		})
	}

	waitErr := make(chan error, 1)
	go func() { waitErr <- g.Wait() }()

	for {
		select {
		case <-results:
			done++
			p.report(StageSynthesizing, done, len(turns))
		case err := <-waitErr:
			if err != nil {
				return nil, err
			}
			// Drain progress reports that raced with completion.
			for len(results) > 0 {
				<-results
				done++
				p.report(StageSynthesizing, done, len(turns))
			}
			return segments, nil
		}
	}
}

func (p *Pipeline) fail(stage Stage, err error) error {
	p.report(StageFailed, 0, 0)
	if p.metrics != nil {
		p.metrics.RecordRun("failed")
	}
	p.logger.Error("pipeline run failed",
		zap.String("stage", string(stage)),
		zap.Error(err))
	return &StageError{Stage: stage, Err: err}
}

func (p *Pipeline) report(stage Stage, done, total int) {
	if p.progress != nil {
		p.progress(stage, done, total)
	}
}

func (p *Pipeline) recordStage(stage Stage, start time.Time) {
	if p.metrics != nil {
		p.metrics.RecordStage(string(stage), time.Since(start).Seconds())
	}
}
