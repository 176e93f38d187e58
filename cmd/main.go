package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"synthetic-radio-host/internal/article"
	"synthetic-radio-host/internal/audio"
	"synthetic-radio-host/internal/config"
	"synthetic-radio-host/internal/dialogue"
	"synthetic-radio-host/internal/metrics"
	"synthetic-radio-host/internal/pipeline"
	"synthetic-radio-host/internal/script"
	"synthetic-radio-host/internal/tts"
)

func main() {
	title := flag.String("title", "", "Wikipedia article title to fetch as source material")
	text := flag.String("text", "", "source text passed directly instead of fetching an article")
	textFile := flag.String("text-file", "", "path to a file with source text")
	out := flag.String("out", "", "output MP3 path (default: <output dir>/show_<timestamp>.mp3)")
	lang := flag.String("lang", "hinglish", "conversation style: hinglish or tanglish")
	previewOnly := flag.Bool("preview-only", false, "generate and print the script without synthesizing audio")
	flag.Parse()

	logger, err := initLogger()
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting synthetic radio host")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal, canceling run")
		cancel()
	}()

	sourceText, err := resolveSource(ctx, cfg, logger, *title, *text, *textFile)
	if err != nil {
		logger.Fatal("failed to resolve source text", zap.Error(err))
	}
	sourceText = article.Truncate(sourceText, cfg.Pipeline.MaxSourceChars)

	persona := script.DefaultPersona()
	switch script.Style(strings.ToLower(*lang)) {
	case script.StyleHinglish:
		persona.Style = script.StyleHinglish
	case script.StyleTanglish:
		persona.Style = script.StyleTanglish
	default:
		logger.Fatal("unsupported style", zap.String("lang", *lang))
	}

	logger.Info("generation configuration",
		zap.String("provider", cfg.Generation.Provider),
		zap.String("model", cfg.Generation.Model),
		zap.String("style", string(persona.Style)))

	chatClient, err := script.NewChatClient(&cfg.Generation, logger)
	if err != nil {
		logger.Fatal("failed to create chat client", zap.Error(err))
	}
	generator := script.NewGenerator(chatClient, persona, script.GenerationOptions{
		Temperature: cfg.Generation.Temperature,
		MaxTokens:   cfg.Generation.MaxTokens,
	}, logger)

	if *previewOnly {
		scriptText, err := generator.Generate(ctx, sourceText)
		if err != nil {
			logger.Fatal("script generation failed", zap.Error(err))
		}
		fmt.Println(scriptText)
		return
	}

	parser := dialogue.NewParser(persona.SpeakerA, persona.SpeakerB, logger)

	provider, err := tts.NewSpeechProvider(&cfg.TTS, logger)
	if err != nil {
		logger.Fatal("failed to create speech provider", zap.Error(err))
	}
	voiceA, voiceB, err := tts.VoicesFor(&cfg.TTS)
	if err != nil {
		logger.Fatal("failed to resolve voices", zap.Error(err))
	}
	synthesizer, err := tts.NewSynthesizer(provider, voiceA, voiceB, logger)
	if err != nil {
		logger.Fatal("failed to create synthesizer", zap.Error(err))
	}

	codec, err := audio.NewFFmpegCodec(logger)
	if err != nil {
		logger.Fatal("audio toolchain unavailable", zap.Error(err))
	}
	assembler := audio.NewAssembler(codec, cfg.Pipeline.Gap(), logger)

	opts := []pipeline.Option{
		pipeline.WithConcurrency(cfg.Pipeline.Concurrency),
		pipeline.WithTurnTimeout(cfg.Pipeline.SynthesisTimeout),
		pipeline.WithProgress(func(stage pipeline.Stage, done, total int) {
			if stage == pipeline.StageSynthesizing && total > 0 {
				logger.Info("synthesizing", zap.Int("done", done), zap.Int("total", total))
				return
			}
			logger.Info("stage", zap.String("stage", string(stage)))
		}),
	}

	if cfg.App.MetricsEnabled {
		metricsSystem := metrics.New(logger)
		metricsHandler := metrics.NewHandler(metricsSystem, logger)
		go startMetricsServer(ctx, cfg.App.MetricsPort, metricsHandler, logger)
		opts = append(opts, pipeline.WithMetrics(metricsSystem, provider.Name()))
	}

	p := pipeline.New(generator, parser, synthesizer, assembler, logger, opts...)

	outPath := *out
	if outPath == "" {
		outPath = filepath.Join(cfg.Pipeline.OutputDir, fmt.Sprintf("show_%s.mp3", time.Now().Format("20060102_150405")))
	}

	result, err := p.Run(ctx, pipeline.Request{
		SourceText: sourceText,
		OutputPath: outPath,
	})
	if err != nil {
		logger.Fatal("pipeline run failed", zap.Error(err))
	}

	fmt.Printf("Script (%d turns):\n\n%s\n\n", len(result.Turns), result.ScriptText)
	fmt.Printf("Audio written to %s (%.1fs, %d bytes)\n",
		result.Artifact.Path, result.Artifact.Duration.Seconds(), result.Artifact.Size)
}

// resolveSource picks the source text from the flags, in priority order:
// direct text, text file, Wikipedia article title.
func resolveSource(ctx context.Context, cfg *config.Config, logger *zap.Logger, title, text, textFile string) (string, error) {
	switch {
	case text != "":
		return text, nil
	case textFile != "":
		data, err := os.ReadFile(textFile)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", textFile, err)
		}
		return string(data), nil
	case title != "":
		client := article.NewClient(cfg.Wikipedia.BaseURL, cfg.Wikipedia.UserAgent, logger)
		art, err := client.FetchSummary(ctx, title)
		if err != nil {
			return "", err
		}
		return art.Extract, nil
	default:
		return "", fmt.Errorf("one of -title, -text or -text-file is required")
	}
}

// initLogger initializes the logger.
func initLogger() (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stdout", "logs/app.log"}
	config.ErrorOutputPaths = []string{"stderr", "logs/error.log"}

	if err := os.MkdirAll("logs", 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return config.Build()
}

// startMetricsServer runs the HTTP server exposing metrics and health.
func startMetricsServer(ctx context.Context, port int, handler *metrics.Handler, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler.MetricsHandler())
	mux.HandleFunc("/health", handler.HealthHandler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	logger.Info("metrics HTTP server started", zap.String("address", server.Addr))

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to stop metrics HTTP server", zap.Error(err))
	}

	logger.Info("metrics HTTP server stopped")
}
