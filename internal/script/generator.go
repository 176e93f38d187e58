package script

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Generator turns article text into a labeled two-speaker dialogue script.
type Generator struct {
	client  ChatClient
	persona Persona
	options GenerationOptions
	logger  *zap.Logger
}

// NewGenerator creates a script generator on top of a chat client.
func NewGenerator(client ChatClient, persona Persona, options GenerationOptions, logger *zap.Logger) *Generator {
	return &Generator{
		client:  client,
		persona: persona,
		options: options,
		logger:  logger,
	}
}

// Generate produces the raw script text for the given source article.
// Any provider failure is returned as *GenerationError; a partial script
// is never returned.
func (g *Generator) Generate(ctx context.Context, sourceText string) (string, error) {
	if strings.TrimSpace(sourceText) == "" {
		return "", &GenerationError{
			Provider: g.client.GetName(),
			Err:      fmt.Errorf("source text is empty"),
		}
	}

	messages := []Message{
		{Role: "system", Content: g.persona.SystemPrompt()},
		{Role: "user", Content: g.persona.BuildPrompt(sourceText)},
	}

	g.logger.Info("generating dialogue script",
		zap.String("provider", g.client.GetName()),
		zap.String("style", string(g.persona.Style)),
		zap.Int("source_chars", len(sourceText)))

	resp, err := g.client.GenerateResponse(ctx, messages, g.options)
	if err != nil {
		return "", &GenerationError{
			Provider: g.client.GetName(),
			Err:      err,
		}
	}

	script := strings.TrimSpace(resp.Content)
	if script == "" {
		return "", &GenerationError{
			Provider: g.client.GetName(),
			Err:      fmt.Errorf("provider returned an empty script"),
		}
	}

	g.logger.Info("script generated",
		zap.String("provider", resp.Provider),
		zap.String("model", resp.Model),
		zap.Int("script_chars", len(script)),
		zap.Int("total_tokens", resp.Usage.TotalTokens))

	return script, nil
}
