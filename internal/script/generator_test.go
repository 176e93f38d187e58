package script

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChatClient struct {
	response *Response
	err      error

	gotMessages []Message
	gotOptions  GenerationOptions
}

func (f *fakeChatClient) GenerateResponse(ctx context.Context, messages []Message, options GenerationOptions) (*Response, error) {
	f.gotMessages = messages
	f.gotOptions = options
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeChatClient) GetName() string {
	return "fake"
}

func TestGeneratorGenerate(t *testing.T) {
	client := &fakeChatClient{
		response: &Response{
			Content:  "Person A: Hello!\nPerson B: Hi there!",
			Model:    "llama-3.3-70b-versatile",
			Provider: "groq",
		},
	}
	gen := NewGenerator(client, DefaultPersona(), GenerationOptions{Temperature: 0.8, MaxTokens: 800}, zap.NewNop())

	script, err := gen.Generate(context.Background(), "An article about cricket.")

	require.NoError(t, err)
	assert.Equal(t, "Person A: Hello!\nPerson B: Hi there!", script)

	require.Len(t, client.gotMessages, 2)
	assert.Equal(t, "system", client.gotMessages[0].Role)
	assert.Equal(t, "user", client.gotMessages[1].Role)
	assert.Contains(t, client.gotMessages[1].Content, "An article about cricket.")
	assert.Equal(t, 0.8, client.gotOptions.Temperature)
	assert.Equal(t, 800, client.gotOptions.MaxTokens)
}

func TestGeneratorEmptySource(t *testing.T) {
	gen := NewGenerator(&fakeChatClient{}, DefaultPersona(), GenerationOptions{}, zap.NewNop())

	_, err := gen.Generate(context.Background(), "   \n\t ")

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Error(), "source text is empty")
}

func TestGeneratorWrapsClientError(t *testing.T) {
	cause := errors.New("connection refused")
	gen := NewGenerator(&fakeChatClient{err: cause}, DefaultPersona(), GenerationOptions{}, zap.NewNop())

	_, err := gen.Generate(context.Background(), "An article.")

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "fake", genErr.Provider)
	assert.ErrorIs(t, err, cause)
}

func TestGeneratorEmptyScript(t *testing.T) {
	client := &fakeChatClient{response: &Response{Content: "  \n "}}
	gen := NewGenerator(client, DefaultPersona(), GenerationOptions{}, zap.NewNop())

	_, err := gen.Generate(context.Background(), "An article.")

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Error(), "empty script")
}
