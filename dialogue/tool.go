package dialogue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/talentscout/language"
	"github.com/tbxark/talentscout/oracle"
	"github.com/tbxark/talentscout/types"
)

// OracleDialogueGenerator streams a free reply over the request transcript.
type OracleDialogueGenerator[T any] struct {
	oracle oracle.Oracle
}

func NewOracleDialogueGenerator[T any](o oracle.Oracle) *OracleDialogueGenerator[T] {
	return &OracleDialogueGenerator[T]{oracle: o}
}

func (g *OracleDialogueGenerator[T]) GenerateDialogue(ctx context.Context, req *types.ToolRequest[T]) (string, error) {
	stream, err := g.GenerateDialogueStream(ctx, req)
	if err != nil {
		return "", err
	}
	return Collect(stream, nil)
}

func (g *OracleDialogueGenerator[T]) GenerateDialogueStream(ctx context.Context, req *types.ToolRequest[T]) (*schema.StreamReader[string], error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("empty transcript")
	}
	stream, err := g.oracle.StreamChat(ctx, req.Messages)
	if err != nil {
		return nil, fmt.Errorf("LLM stream call failed: %w", err)
	}
	return stream, nil
}

// Collect drains stream, passing each fragment to onChunk, and returns the
// concatenated text. The stream is always closed.
func Collect(stream *schema.StreamReader[string], onChunk func(string)) (string, error) {
	defer stream.Close()
	var sb strings.Builder
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sb.String(), fmt.Errorf("receive stream chunk: %w", err)
		}
		if chunk == "" {
			continue
		}
		sb.WriteString(chunk)
		if onChunk != nil {
			onChunk(chunk)
		}
	}
	return sb.String(), nil
}

// OracleLocalizer translates prompts through the oracle when the language
// is one prompts can be translated into.
type OracleLocalizer struct {
	oracle oracle.Oracle
}

func NewOracleLocalizer(o oracle.Oracle) *OracleLocalizer {
	return &OracleLocalizer{oracle: o}
}

func (l *OracleLocalizer) Localize(ctx context.Context, text, lang string) string {
	if lang == "" || lang == language.Default || !language.Known(lang) {
		return text
	}
	translated, err := l.oracle.Translate(ctx, text, language.Name(lang))
	if err != nil || strings.TrimSpace(translated) == "" {
		slog.Warn("Prompt translation failed, keeping English", "lang", lang, "error", err)
		return text
	}
	return translated
}
