package structured

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/talentscout/oracle"
	"github.com/xeipuuv/gojsonschema"
)

type PromptBuilder[TInput any] func(ctx context.Context, input TInput) ([]*schema.Message, error)

type Chain[TInput, TOutput any] struct {
	PromptBuilder PromptBuilder[TInput]
	Oracle        oracle.Oracle
	ToolInfo      *schema.ToolInfo

	schema       *gojsonschema.Schema
	modelOptions []model.Option
}

type chainOptions struct {
	schemaJSON   string
	modelOptions []model.Option
}

type Option func(*chainOptions)

// WithSchema validates every raw oracle answer against schemaJSON before decoding.
func WithSchema(schemaJSON string) Option {
	return func(o *chainOptions) {
		o.schemaJSON = schemaJSON
	}
}

func WithModelOptions(opts ...model.Option) Option {
	return func(o *chainOptions) {
		o.modelOptions = append(o.modelOptions, opts...)
	}
}

func NewChain[TInput, TOutput any](
	o oracle.Oracle,
	promptBuilder PromptBuilder[TInput],
	toolName string,
	toolDesc string,
	opts ...Option,
) (*Chain[TInput, TOutput], error) {
	options := chainOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	toolInfo, err := utils.GoStruct2ToolInfo[TOutput](toolName, toolDesc)
	if err != nil {
		return nil, fmt.Errorf("convert tool info failed: %w", err)
	}
	chain := &Chain[TInput, TOutput]{
		PromptBuilder: promptBuilder,
		Oracle:        o,
		ToolInfo:      toolInfo,
		modelOptions:  options.modelOptions,
	}
	if options.schemaJSON != "" {
		compiled, sErr := gojsonschema.NewSchema(gojsonschema.NewStringLoader(options.schemaJSON))
		if sErr != nil {
			return nil, fmt.Errorf("compile output schema failed: %w", sErr)
		}
		chain.schema = compiled
	}
	return chain, nil
}

func (s *Chain[TInput, TOutput]) Invoke(ctx context.Context, input TInput) (*TOutput, error) {
	messages, err := s.PromptBuilder(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("build prompt failed: %w", err)
	}

	raw, err := s.Oracle.JSONChat(ctx, messages, s.ToolInfo, s.modelOptions...)
	if err != nil {
		return nil, fmt.Errorf("call oracle failed: %w", err)
	}
	return s.Parse(raw)
}

// Parse validates raw against the chain schema, when one is set, and decodes it.
func (s *Chain[TInput, TOutput]) Parse(raw string) (*TOutput, error) {
	if s.schema != nil {
		if err := ValidateJSONString(s.schema, raw); err != nil {
			return nil, err
		}
	}
	var result TOutput
	if err := sonic.UnmarshalString(raw, &result); err != nil {
		return nil, fmt.Errorf("parse ToolCall arguments failed: %w", err)
	}
	return &result, nil
}

func (s *Chain[TInput, TOutput]) GetToolInfo() *schema.ToolInfo {
	return s.ToolInfo
}
