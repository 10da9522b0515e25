package types

import "github.com/cloudwego/eino/schema"

type Phase string

const (
	PhaseCollecting             Phase = "collecting"
	PhaseAwaitingStackQuestions Phase = "awaiting_stack_questions"
	PhaseFreeChat               Phase = "free_chat"
	PhaseEnded                  Phase = "ended"
)

type FieldInfo struct {
	JSONPointer string `json:"json_pointer"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

// ToolRequest is the context handed to every oracle-backed component.
type ToolRequest[T any] struct {
	State            T
	StateSchema      string
	Phase            Phase
	Messages         []*schema.Message
	MissingFields    []FieldInfo
	ValidationErrors []FieldInfo
}
