package script

import (
	"fmt"

	"go.uber.org/zap"

	"synthetic-radio-host/internal/config"
)

// NewChatClient creates a chat client for the configured generation provider.
func NewChatClient(cfg *config.GenerationConfig, logger *zap.Logger) (ChatClient, error) {
	switch cfg.Provider {
	case "groq":
		return NewGroqClient(cfg.Groq.APIKey, cfg.Groq.BaseURL, cfg.Model, logger), nil
	case "openrouter":
		return NewOpenRouterClient(cfg.OpenRouter.APIKey, cfg.Model, cfg.OpenRouter.SiteURL, cfg.OpenRouter.SiteName, logger), nil
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s (supported: 'groq', 'openrouter')", cfg.Provider)
	}
}
