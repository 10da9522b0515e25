package command

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/talentscout/oracle"
	"github.com/tbxark/talentscout/structured"
)

const (
	parseCommandToolName        = "parse_command_intent"
	parseCommandToolDescription = "Analyze the candidate's message and decide whether they want to end the conversation: exit, none."
)

type parseCommandInput struct {
	Intent Command `json:"intent" jsonschema:"required,enum=exit,enum=none,description=The candidate's command intent"`
}

// ToolBasedCommandParser asks the oracle whether a turn ends the conversation.
// It catches farewells that are not in the keyword list at the cost of one call per turn.
type ToolBasedCommandParser struct {
	chain *structured.Chain[string, parseCommandInput]
}

func NewToolBasedCommandParser(o oracle.Oracle) (*ToolBasedCommandParser, error) {
	chain, err := structured.NewChain[string, parseCommandInput](
		o,
		buildParseCommandPrompt,
		parseCommandToolName,
		parseCommandToolDescription,
		structured.WithModelOptions(model.WithTemperature(0)),
	)
	if err != nil {
		return nil, err
	}
	return &ToolBasedCommandParser{chain: chain}, nil
}

func (p *ToolBasedCommandParser) ParseCommand(ctx context.Context, input string) (Command, error) {
	result, err := p.chain.Invoke(ctx, input)
	if err != nil {
		return None, err
	}
	switch result.Intent {
	case Exit, None:
		return result.Intent, nil
	default:
		return None, fmt.Errorf("unexpected intent %q returned by %s", result.Intent, parseCommandToolName)
	}
}

func buildParseCommandPrompt(ctx context.Context, input string) ([]*schema.Message, error) {
	systemPrompt := fmt.Sprintf(`You are an assistant for a hiring chatbot that screens job candidates.

Decide whether the candidate's latest message, in any language, is a request to end the conversation.

- exit: Only return this if the whole message is a farewell or an explicit wish to stop (e.g., "bye", "that's all, thanks", "alvida"). Do not treat thanks inside a longer answer as exit.
- none: Everything else, including answers that contain personal details or questions.

Call the '%s' tool with the result.`, parseCommandToolName)

	return []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(input),
	}, nil
}
