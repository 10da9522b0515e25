package testcases

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/tbxark/talentscout/agent"
	"github.com/tbxark/talentscout/candidate"
	"github.com/tbxark/talentscout/dialogue"
	"github.com/tbxark/talentscout/store"
	"github.com/tbxark/talentscout/types"
)

// TestOracleOffline keeps the conversation going when every oracle call fails.
func TestOracleOffline(t *testing.T) {
	t.Parallel()
	flow := NewTestFlow(t, NewScriptedOracle(Script{Offline: true}),
		agent.WithStore(store.NewCSVStore(filepath.Join(t.TempDir(), "candidates.csv")), nil))
	s := flow.NewSession()

	resp := Turn(t, flow, s, "I'm Ana Li, nice to meet you")
	if resp.Phase != types.PhaseCollecting || resp.Asking != candidate.FieldFullName {
		t.Fatalf("expected to keep asking for the name, got phase %s asking %s", resp.Phase, resp.Asking)
	}
	if resp.Message() != dialogue.FieldPrompts[candidate.FieldFullName] {
		t.Errorf("expected the name prompt, got %q", resp.Message())
	}
	if len(resp.Changed) != 0 {
		t.Errorf("nothing should change, got %v", resp.Changed)
	}

	resp = Turn(t, flow, s, "bye")
	if resp.Phase != types.PhaseEnded {
		t.Fatalf("expected ended, got %s", resp.Phase)
	}
	if resp.Saved || len(resp.Warnings) != 0 {
		t.Errorf("a nameless candidate is not saved, got saved=%v warnings=%v", resp.Saved, resp.Warnings)
	}
}

// TestQuestionFallbacks uses the fixed ack, templated questions and the
// apology when the oracle returns nothing usable.
func TestQuestionFallbacks(t *testing.T) {
	t.Parallel()
	flow := NewTestFlow(t, NewScriptedOracle(Script{
		Snapshots: map[string]string{
			"here is everything": `{"full_name":"Ana Li","email":"ana@example.com","phone":"+351 912 345 678",` +
				`"years_experience":4,"desired_positions":["Backend engineer"],"location":"Porto, Portugal","tech_stack":["Rust"]}`,
		},
	}))
	s := flow.NewSession()

	resp := Turn(t, flow, s, "here is everything")
	if resp.Phase != types.PhaseFreeChat {
		t.Fatalf("expected free_chat, got %s", resp.Phase)
	}
	if len(resp.Replies) != 2 || resp.Replies[0] != dialogue.QuestionsAck {
		t.Fatalf("expected the fixed ack then questions, got %q", resp.Replies)
	}
	if !strings.Contains(resp.Replies[1], "Describe a project where you used Rust.") {
		t.Errorf("expected templated questions, got %q", resp.Replies[1])
	}

	resp = Turn(t, flow, s, "what happens next?")
	if resp.Message() != dialogue.ReplyApology {
		t.Errorf("expected apology, got %q", resp.Message())
	}
}
