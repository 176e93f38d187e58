package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds every runtime parameter of the application.
type Config struct {
	App        AppConfig
	Generation GenerationConfig
	TTS        TTSConfig
	Pipeline   PipelineConfig
	Wikipedia  WikipediaConfig
}

// AppConfig holds process-level settings.
type AppConfig struct {
	Env            string
	LogLevel       string
	MetricsEnabled bool
	MetricsPort    int
}

// GenerationConfig holds script-generation provider settings.
type GenerationConfig struct {
	Provider    string
	Model       string
	MaxTokens   int
	Temperature float64
	Groq        GroqConfig
	OpenRouter  OpenRouterConfig
}

type GroqConfig struct {
	APIKey  string
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey   string
	SiteURL  string
	SiteName string
}

// TTSConfig holds text-to-speech provider settings.
type TTSConfig struct {
	Provider   string
	ElevenLabs ElevenLabsConfig
	OpenAI     OpenAITTSConfig
}

// ElevenLabsConfig configures the primary (paid per character) provider.
// Stability, Similarity and Style are voice-naturalness knobs in [0.0, 1.0];
// values outside the range are clamped at provider construction.
type ElevenLabsConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	VoiceA     string
	VoiceB     string
	Stability  float64
	Similarity float64
	Style      float64
}

// OpenAITTSConfig configures the fallback (cheaper) provider.
type OpenAITTSConfig struct {
	APIKey string
	VoiceA string
	VoiceB string
	Speed  float64
}

// PipelineConfig holds settings of one pipeline run.
type PipelineConfig struct {
	GapMs            int
	MaxSourceChars   int
	Concurrency      int
	SynthesisTimeout time.Duration
	OutputDir        string
}

// WikipediaConfig holds article-fetching settings.
type WikipediaConfig struct {
	BaseURL   string
	UserAgent string
}

// Load reads configuration from environment variables and .env.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	// App
	cfg.App.Env = getEnvDefault("APP_ENV", "development")
	cfg.App.LogLevel = getEnvDefault("LOG_LEVEL", "info")
	cfg.App.MetricsEnabled = getEnvBoolDefault("METRICS_ENABLED", false)
	cfg.App.MetricsPort = getEnvIntDefault("METRICS_PORT", 8080)

	// Generation
	cfg.Generation.Provider = getEnvDefault("GENERATION_PROVIDER", "groq")
	cfg.Generation.Model = getEnvDefault("GENERATION_MODEL", "llama-3.3-70b-versatile")
	cfg.Generation.MaxTokens = getEnvIntDefault("GENERATION_MAX_TOKENS", 800)
	cfg.Generation.Temperature = getEnvFloatDefault("GENERATION_TEMPERATURE", 0.8)
	cfg.Generation.Groq.APIKey = os.Getenv("GROQ_API_KEY")
	cfg.Generation.Groq.BaseURL = getEnvDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1")
	cfg.Generation.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	cfg.Generation.OpenRouter.SiteURL = getEnvDefault("OPENROUTER_SITE_URL", "https://synthetic-radio-host.local")
	cfg.Generation.OpenRouter.SiteName = getEnvDefault("OPENROUTER_SITE_NAME", "Synthetic Radio Host")

	// TTS
	cfg.TTS.Provider = getEnvDefault("TTS_PROVIDER", "elevenlabs")
	cfg.TTS.ElevenLabs.APIKey = os.Getenv("ELEVENLABS_API_KEY")
	cfg.TTS.ElevenLabs.BaseURL = getEnvDefault("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io")
	cfg.TTS.ElevenLabs.Model = getEnvDefault("ELEVENLABS_MODEL", "eleven_multilingual_v2")
	cfg.TTS.ElevenLabs.VoiceA = getEnvDefault("ELEVENLABS_VOICE_A", "21m00Tcm4TlvDq8ikWAM")
	cfg.TTS.ElevenLabs.VoiceB = getEnvDefault("ELEVENLABS_VOICE_B", "pNInz6obpgDQGcFmaJgB")
	cfg.TTS.ElevenLabs.Stability = getEnvFloatDefault("ELEVENLABS_STABILITY", 0.5)
	cfg.TTS.ElevenLabs.Similarity = getEnvFloatDefault("ELEVENLABS_SIMILARITY_BOOST", 0.75)
	cfg.TTS.ElevenLabs.Style = getEnvFloatDefault("ELEVENLABS_STYLE", 0.5)
	cfg.TTS.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.TTS.OpenAI.VoiceA = getEnvDefault("OPENAI_VOICE_A", "nova")
	cfg.TTS.OpenAI.VoiceB = getEnvDefault("OPENAI_VOICE_B", "onyx")
	cfg.TTS.OpenAI.Speed = getEnvFloatDefault("OPENAI_TTS_SPEED", 1.0)

	// Pipeline
	cfg.Pipeline.GapMs = getEnvIntDefault("PIPELINE_GAP_MS", 300)
	cfg.Pipeline.MaxSourceChars = getEnvIntDefault("PIPELINE_MAX_SOURCE_CHARS", 2000)
	cfg.Pipeline.Concurrency = getEnvIntDefault("PIPELINE_CONCURRENCY", 1)
	cfg.Pipeline.SynthesisTimeout = time.Duration(getEnvIntDefault("PIPELINE_SYNTHESIS_TIMEOUT_SECONDS", 60)) * time.Second
	cfg.Pipeline.OutputDir = getEnvDefault("OUTPUT_DIR", "output")

	// Wikipedia
	cfg.Wikipedia.BaseURL = getEnvDefault("WIKIPEDIA_BASE_URL", "https://en.wikipedia.org/api/rest_v1")
	cfg.Wikipedia.UserAgent = getEnvDefault("WIKIPEDIA_USER_AGENT", "SyntheticRadioHost/1.0")

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func getEnvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvFloatDefault(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getEnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// validateConfig checks that the configuration is usable.
func validateConfig(config *Config) error {
	switch config.Generation.Provider {
	case "groq":
		if config.Generation.Groq.APIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is not set")
		}
	case "openrouter":
		if config.Generation.OpenRouter.APIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY is not set")
		}
	default:
		return fmt.Errorf("unsupported GENERATION_PROVIDER: %s (supported: groq, openrouter)", config.Generation.Provider)
	}

	switch config.TTS.Provider {
	case "elevenlabs":
		if config.TTS.ElevenLabs.APIKey == "" {
			return fmt.Errorf("ELEVENLABS_API_KEY is not set")
		}
	case "openai":
		if config.TTS.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is not set")
		}
	default:
		return fmt.Errorf("unsupported TTS_PROVIDER: %s (supported: elevenlabs, openai)", config.TTS.Provider)
	}

	if config.Pipeline.GapMs < 0 {
		return fmt.Errorf("PIPELINE_GAP_MS must not be negative")
	}
	if config.Pipeline.MaxSourceChars <= 0 {
		return fmt.Errorf("PIPELINE_MAX_SOURCE_CHARS must be positive")
	}
	if config.Pipeline.Concurrency < 1 {
		return fmt.Errorf("PIPELINE_CONCURRENCY must be at least 1")
	}

	return nil
}

// Gap returns the inter-turn pause as a duration.
func (c *PipelineConfig) Gap() time.Duration {
	return time.Duration(c.GapMs) * time.Millisecond
}

// IsDevelopment reports whether the application runs in development mode.
func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction reports whether the application runs in production mode.
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// GetLogLevel returns the configured log level as a zap level.
func (c *AppConfig) GetLogLevel() zap.AtomicLevel {
	switch c.LogLevel {
	case "debug":
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		return zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
}
