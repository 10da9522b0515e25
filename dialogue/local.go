package dialogue

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/talentscout/candidate"
	"github.com/tbxark/talentscout/types"
)

// LocalDialogueGenerator answers from fixed English text without the oracle.
type LocalDialogueGenerator[T any] struct{}

func (g *LocalDialogueGenerator[T]) GenerateDialogue(ctx context.Context, req *types.ToolRequest[T]) (string, error) {
	switch req.Phase {
	case types.PhaseCollecting:
		if len(req.MissingFields) > 0 {
			field := candidate.Field(strings.TrimPrefix(req.MissingFields[0].JSONPointer, "/"))
			return FieldPrompt(field), nil
		}
		return ReplyApology, nil
	case types.PhaseAwaitingStackQuestions:
		return QuestionsAck, nil
	case types.PhaseEnded:
		return ClosingMessage, nil
	default:
		return ReplyApology, nil
	}
}

func (g *LocalDialogueGenerator[T]) GenerateDialogueStream(ctx context.Context, req *types.ToolRequest[T]) (*schema.StreamReader[string], error) {
	message, err := g.GenerateDialogue(ctx, req)
	if err != nil {
		return nil, err
	}
	stream := schema.StreamReaderFromArray([]string{message})
	return stream, nil
}

type FailbackDialogueGenerator[T any] struct {
	generators []Generator[T]
}

func NewFailbackDialogueGenerator[T any](generators ...Generator[T]) *FailbackDialogueGenerator[T] {
	return &FailbackDialogueGenerator[T]{generators: generators}
}

func (g *FailbackDialogueGenerator[T]) GenerateDialogue(ctx context.Context, req *types.ToolRequest[T]) (string, error) {
	var lastErr error
	for _, generator := range g.generators {
		plan, err := generator.GenerateDialogue(ctx, req)
		if err == nil {
			return plan, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("all dialogue generators failed: %w", lastErr)
}

func (g *FailbackDialogueGenerator[T]) GenerateDialogueStream(ctx context.Context, req *types.ToolRequest[T]) (*schema.StreamReader[string], error) {
	var lastErr error
	for _, generator := range g.generators {
		stream, err := generator.GenerateDialogueStream(ctx, req)
		if err == nil {
			return stream, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("all dialogue generators failed: %w", lastErr)
}
