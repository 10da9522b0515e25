package agent

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
)

var _ adk.Agent = (*Agent)(nil)

// Agent runs one intake turn per invocation so the flow can be embedded in
// an adk runner. The session is picked by the context routing key.
type Agent struct {
	name        string
	description string
	flow        *IntakeFlow
	sessions    SessionReadWriter
}

func NewAgent(name, description string, flow *IntakeFlow, sessions SessionReadWriter) *Agent {
	return &Agent{
		name:        name,
		description: description,
		flow:        flow,
		sessions:    sessions,
	}
}

func (a *Agent) Name(ctx context.Context) string {
	return a.name
}

func (a *Agent) Description(ctx context.Context) string {
	return a.description
}

func (a *Agent) Run(ctx context.Context, input *adk.AgentInput, options ...adk.AgentRunOption) *adk.AsyncIterator[*adk.AgentEvent] {
	iter, gen := adk.NewAsyncIteratorPair[*adk.AgentEvent]()
	go func() {
		defer func() {
			e := recover()
			if e != nil {
				gen.Send(&adk.AgentEvent{
					Err: fmt.Errorf("recover from panic: %v", e),
				})
			}
			gen.Close()
		}()
		userInput, ok := lastUserInput(input)
		if !ok {
			gen.Send(&adk.AgentEvent{
				Err: fmt.Errorf("no user message in input"),
			})
			return
		}
		session, err := a.sessions.Load(ctx)
		if err != nil {
			gen.Send(&adk.AgentEvent{
				Err: fmt.Errorf("load session failed: %w", err),
			})
			return
		}
		result, err := a.flow.HandleTurn(ctx, session, userInput, nil)
		if err != nil {
			gen.Send(&adk.AgentEvent{
				Err: fmt.Errorf("flow invoke failed: %w", err),
			})
			return
		}
		if err := a.sessions.Save(ctx, session); err != nil {
			gen.Send(&adk.AgentEvent{
				Err: fmt.Errorf("save session failed: %w", err),
			})
			return
		}
		for _, reply := range result.Replies {
			gen.Send(&adk.AgentEvent{
				Output: &adk.AgentOutput{
					MessageOutput: &adk.MessageVariant{
						IsStreaming: false,
						Message:     schema.AssistantMessage(reply, nil),
						Role:        schema.Assistant,
					},
				},
			})
		}
	}()
	return iter
}

func lastUserInput(input *adk.AgentInput) (string, bool) {
	if input == nil {
		return "", false
	}
	for i := len(input.Messages) - 1; i >= 0; i-- {
		m := input.Messages[i]
		if m != nil && m.Role == schema.User {
			return m.Content, true
		}
	}
	return "", false
}
