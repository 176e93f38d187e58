package script

import (
	"context"
	"fmt"
)

// Message is a single chat message sent to a generation provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Response is the provider-agnostic generation result.
type Response struct {
	Content      string `json:"content"`
	Model        string `json:"model"`
	Usage        Usage  `json:"usage"`
	FinishReason string `json:"finish_reason"`
	Provider     string `json:"provider"`
}

// Usage holds token accounting returned by the provider.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GenerationOptions are per-request sampling parameters. Temperature is
// deliberately above zero so generated dialogue varies between runs.
type GenerationOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

// ChatClient is the interface to a chat-completion provider.
type ChatClient interface {
	// GenerateResponse produces a completion for the given messages.
	GenerateResponse(ctx context.Context, messages []Message, options GenerationOptions) (*Response, error)

	// GetName returns the provider name.
	GetName() string
}

// GenerationError wraps any failure of the script-generation stage.
// A partial script is never usable, so callers treat it as fatal.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("script generation failed (%s): %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
