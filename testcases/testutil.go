package testcases

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/talentscout/agent"
	"github.com/tbxark/talentscout/config"
	"github.com/tbxark/talentscout/dialogue"
	"github.com/tbxark/talentscout/oracle"
	"github.com/tbxark/talentscout/oracle/oracletest"
)

const (
	extractTool   = "extract_candidate"
	questionsTool = "generate_tech_questions"
	commandTool   = "parse_command_intent"
)

var errOffline = errors.New("oracle offline")

// Script describes how the scripted oracle answers a conversation.
type Script struct {
	// Snapshots maps a user message to the extraction returned for it.
	// Unlisted messages extract nothing.
	Snapshots map[string]string
	// Questions is the raw question set; empty means generation fails.
	Questions string
	// Ack is the streamed acknowledgement before the questions.
	Ack string
	// Reply answers every free chat turn.
	Reply string
	// Intents maps a user message to the command intent; unlisted messages are none.
	Intents map[string]string
	// Offline makes every oracle call fail.
	Offline bool
}

func lastUserMessage(messages []*schema.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i] != nil && messages[i].Role == schema.User {
			return messages[i].Content
		}
	}
	return ""
}

func NewScriptedOracle(script Script) *oracletest.Fake {
	return &oracletest.Fake{
		JSONFunc: func(ctx context.Context, messages []*schema.Message, tool *schema.ToolInfo) (string, error) {
			if script.Offline {
				return "", errOffline
			}
			switch tool.Name {
			case extractTool:
				if raw, ok := script.Snapshots[lastUserMessage(messages)]; ok {
					return raw, nil
				}
				return `{}`, nil
			case questionsTool:
				if script.Questions == "" {
					return "", errOffline
				}
				return script.Questions, nil
			case commandTool:
				if intent, ok := script.Intents[lastUserMessage(messages)]; ok {
					return `{"intent":"` + intent + `"}`, nil
				}
				return `{"intent":"none"}`, nil
			default:
				return "", errors.New("unexpected tool " + tool.Name)
			}
		},
		ReplyFunc: func(ctx context.Context, messages []*schema.Message) (string, error) {
			if script.Offline {
				return "", errOffline
			}
			last := messages[len(messages)-1]
			if last.Role == schema.Assistant && last.Content == dialogue.QuestionsAck {
				return script.Ack, nil
			}
			return script.Reply, nil
		},
		TranslateFunc: func(ctx context.Context, text, language string) (string, error) {
			if script.Offline {
				return "", errOffline
			}
			return "[" + language + "] " + text, nil
		},
	}
}

// keywordDetector reports a language when the text contains one of its
// keywords, so scenarios do not depend on statistical detection.
type keywordDetector map[string]string

func (d keywordDetector) Detect(text string) (string, float64, bool) {
	lower := strings.ToLower(text)
	for keyword, code := range d {
		if strings.Contains(lower, keyword) {
			return code, 0.99, true
		}
	}
	return "en", 0.99, true
}

var defaultDetector = keywordDetector{"hola": "es", "nombre": "es"}

func NewTestFlow(t *testing.T, fake oracle.Oracle, opts ...agent.FlowOption) *agent.IntakeFlow {
	t.Helper()
	opts = append([]agent.FlowOption{agent.WithLanguageDetector(defaultDetector)}, opts...)
	flow, err := agent.NewOracleIntakeFlow(fake, opts...)
	if err != nil {
		t.Fatalf("failed to create flow: %v", err)
	}
	return flow
}

// Turn runs one user message and fails the test on error.
func Turn(t *testing.T, flow *agent.IntakeFlow, s *agent.Session, input string) *agent.TurnResult {
	t.Helper()
	result, err := flow.HandleTurn(context.Background(), s, input, nil)
	if err != nil {
		t.Fatalf("turn %q failed: %v", input, err)
	}
	t.Logf("user: %s", input)
	t.Logf("assistant: %s", result.Message())
	return result
}

// InitOracle connects to the configured model. Live tests are skipped unless
// TALENTSCOUT_RUN_LIVE_TESTS=1 and an API key is configured.
func InitOracle(t *testing.T) oracle.Oracle {
	t.Helper()
	if os.Getenv("TALENTSCOUT_RUN_LIVE_TESTS") != "1" {
		t.Skip("set TALENTSCOUT_RUN_LIVE_TESTS=1 to run live LLM tests")
		return nil
	}
	conf, err := config.Load("../config.json")
	if err != nil {
		t.Skipf("failed to load config: %v", err)
		return nil
	}
	if conf.APIKey == "" {
		t.Skip("no API key configured")
		return nil
	}
	chatModel, err := oracle.NewOpenAIChatModel(context.Background(), oracle.ModelConfig{
		APIKey:  conf.APIKey,
		BaseURL: conf.BaseURL,
		Model:   conf.Model,
	})
	if err != nil {
		t.Fatalf("failed to init chat model: %v", err)
		return nil
	}
	return oracle.NewChatModelOracle(chatModel)
}
