// Package oracle abstracts the hosted text-generation service used for
// extraction, translation, question generation and free chat.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

var ErrNoToolCall = errors.New("no tool call in model response")

// Oracle is the narrow contract the intake agent depends on.
type Oracle interface {
	// StreamChat returns a lazy sequence of plain text fragments.
	StreamChat(ctx context.Context, messages []*schema.Message, opts ...model.Option) (*schema.StreamReader[string], error)
	// JSONChat forces a single call of tool and returns its raw JSON arguments.
	JSONChat(ctx context.Context, messages []*schema.Message, tool *schema.ToolInfo, opts ...model.Option) (string, error)
	// Translate translates one short text into language (a display name such as "Hindi").
	Translate(ctx context.Context, text, language string) (string, error)
}

const translateSystemPromptTemplate = "Translate the following short prompt into %s. Output only the translation."

var _ Oracle = (*ChatModelOracle)(nil)

// ChatModelOracle implements Oracle on top of an eino chat model.
type ChatModelOracle struct {
	chatModel model.BaseChatModel
}

func NewChatModelOracle(chatModel model.BaseChatModel) *ChatModelOracle {
	return &ChatModelOracle{chatModel: chatModel}
}

func (o *ChatModelOracle) StreamChat(ctx context.Context, messages []*schema.Message, opts ...model.Option) (*schema.StreamReader[string], error) {
	options := append([]model.Option{
		model.WithTemperature(0.3),
		model.WithMaxTokens(800),
	}, opts...)
	stream, err := o.chatModel.Stream(ctx, messages, options...)
	if err != nil {
		return nil, fmt.Errorf("LLM stream call failed: %w", err)
	}
	return schema.StreamReaderWithConvert(stream, func(message *schema.Message) (string, error) {
		if message == nil {
			return "", nil
		}
		return message.Content, nil
	}), nil
}

func (o *ChatModelOracle) JSONChat(ctx context.Context, messages []*schema.Message, tool *schema.ToolInfo, opts ...model.Option) (string, error) {
	if tool == nil {
		return "", fmt.Errorf("tool info is required")
	}
	options := append([]model.Option{
		model.WithTemperature(0),
		model.WithTools([]*schema.ToolInfo{tool}),
		model.WithToolChoice(schema.ToolChoiceForced, tool.Name),
	}, opts...)
	response, err := o.chatModel.Generate(ctx, messages, options...)
	if err != nil {
		return "", fmt.Errorf("call model failed: %w", err)
	}
	for _, tc := range response.ToolCalls {
		if tc.Function.Name == tool.Name {
			return tc.Function.Arguments, nil
		}
	}
	// some OpenAI-compatible backends ignore forced tool choice and answer inline
	if content := CleanJSONBlock(response.Content); strings.HasPrefix(content, "{") {
		return content, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNoToolCall, tool.Name)
}

func (o *ChatModelOracle) Translate(ctx context.Context, text, language string) (string, error) {
	response, err := o.chatModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage(fmt.Sprintf(translateSystemPromptTemplate, language)),
		schema.UserMessage(text),
	}, model.WithTemperature(0.3), model.WithMaxTokens(800))
	if err != nil {
		return "", fmt.Errorf("translate call failed: %w", err)
	}
	translated := strings.TrimSpace(response.Content)
	if translated == "" {
		return "", fmt.Errorf("translate call returned empty text")
	}
	return translated, nil
}

// CleanJSONBlock removes markdown code fences around a JSON payload.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
