package dialogue

import (
	"context"

	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/talentscout/types"
)

type Generator[T any] interface {
	GenerateDialogue(ctx context.Context, req *types.ToolRequest[T]) (string, error)
	GenerateDialogueStream(ctx context.Context, req *types.ToolRequest[T]) (*schema.StreamReader[string], error)
}

// Localizer renders a fixed English prompt in the session language. It never
// fails; when translation is impossible the English text is returned.
type Localizer interface {
	Localize(ctx context.Context, text, lang string) string
}
