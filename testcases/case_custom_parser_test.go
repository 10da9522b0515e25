package testcases

import (
	"testing"

	"github.com/tbxark/talentscout/agent"
	"github.com/tbxark/talentscout/candidate"
	"github.com/tbxark/talentscout/command"
	"github.com/tbxark/talentscout/dialogue"
	"github.com/tbxark/talentscout/extract"
	"github.com/tbxark/talentscout/oracle/oracletest"
	"github.com/tbxark/talentscout/questions"
	"github.com/tbxark/talentscout/types"
)

func newCustomParserFlow(t *testing.T, fake *oracletest.Fake, parser command.Parser) *agent.IntakeFlow {
	t.Helper()
	extractor, err := extract.NewToolBasedExtractor(fake)
	if err != nil {
		t.Fatalf("failed to create extractor: %v", err)
	}
	flow, err := agent.NewIntakeFlow(
		candidate.Spec{},
		extractor,
		questions.TemplateGenerator{},
		&dialogue.LocalDialogueGenerator[*candidate.Record]{},
		dialogue.NewOracleLocalizer(fake),
		parser,
		agent.WithLanguageDetector(defaultDetector),
	)
	if err != nil {
		t.Fatalf("failed to create flow: %v", err)
	}
	return flow
}

// TestToolBasedCommandParser lets the oracle recognise a farewell that is not
// in the keyword list.
func TestToolBasedCommandParser(t *testing.T) {
	t.Parallel()
	fake := NewScriptedOracle(Script{
		Snapshots: map[string]string{"I'm Ana Li": `{"full_name":"Ana Li"}`},
		Intents:   map[string]string{"I think we're done here, talk soon": "exit"},
	})
	toolParser, err := command.NewToolBasedCommandParser(fake)
	if err != nil {
		t.Fatalf("failed to create parser: %v", err)
	}
	flow := newCustomParserFlow(t, fake, toolParser)
	s := flow.NewSession()

	resp := Turn(t, flow, s, "I'm Ana Li")
	if resp.Asking != candidate.FieldEmail {
		t.Fatalf("expected to ask for email, got %s", resp.Asking)
	}
	resp = Turn(t, flow, s, "I think we're done here, talk soon")
	if resp.Phase != types.PhaseEnded {
		t.Fatalf("expected ended, got %s", resp.Phase)
	}
	if fake.JSONCalls(commandTool) != 2 {
		t.Errorf("expected 2 intent calls, got %d", fake.JSONCalls(commandTool))
	}
}

// TestFailbackCommandParser falls back to keywords when the oracle is down.
func TestFailbackCommandParser(t *testing.T) {
	t.Parallel()
	fake := NewScriptedOracle(Script{Offline: true})
	toolParser, err := command.NewToolBasedCommandParser(fake)
	if err != nil {
		t.Fatalf("failed to create parser: %v", err)
	}
	flow := newCustomParserFlow(t, fake, command.NewFailbackCommandParser(toolParser, command.NewLocalCommandParser()))
	s := flow.NewSession()

	resp := Turn(t, flow, s, "hello there")
	if resp.Phase != types.PhaseCollecting {
		t.Fatalf("expected collecting, got %s", resp.Phase)
	}
	resp = Turn(t, flow, s, "  Goodbye ")
	if resp.Phase != types.PhaseEnded {
		t.Fatalf("expected ended, got %s", resp.Phase)
	}
	if resp.Message() != dialogue.ClosingMessage {
		t.Errorf("expected closing message, got %q", resp.Message())
	}
}
