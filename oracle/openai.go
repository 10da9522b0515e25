package oracle

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"
)

type ModelConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// NewOpenAIChatModel creates an OpenAI-compatible chat model.
func NewOpenAIChatModel(ctx context.Context, conf ModelConfig) (*openai.ChatModel, error) {
	if conf.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if conf.BaseURL == "" {
		conf.BaseURL = DefaultBaseURL
	}
	if conf.Model == "" {
		conf.Model = DefaultModel
	}
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  conf.APIKey,
		Model:   conf.Model,
		BaseURL: conf.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init chat model: %w", err)
	}
	return chatModel, nil
}
