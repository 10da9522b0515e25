package testcases

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tbxark/talentscout/agent"
	"github.com/tbxark/talentscout/candidate"
	"github.com/tbxark/talentscout/dialogue"
	"github.com/tbxark/talentscout/store"
	"github.com/tbxark/talentscout/types"
)

var fullIntake = Script{
	Snapshots: map[string]string{
		"Hi, I'm Ana Li":                `{"full_name":"Ana Li"}`,
		"ana.li@example.com":            `{"full_name":"Ana Li","email":"ana.li@example.com"}`,
		"+351 912 345 678":              `{"phone":"+351 912 345 678"}`,
		"about 6 years":                 `{"years_experience":"6"}`,
		"Backend engineer or SRE":       `{"desired_positions":["Backend engineer","SRE"]}`,
		"Lisbon, Portugal":              `{"location":"Lisbon, Portugal"}`,
		"Go, PostgreSQL and Kubernetes": `{"tech_stack":["Go","PostgreSQL","Kubernetes"]}`,
	},
	Questions: `{"items":[` +
		`{"technology":"Go","questions":["How do goroutines differ from threads?","When would you use a buffered channel?","How does context cancellation propagate?"]},` +
		`{"technology":"PostgreSQL","questions":["How do you find a slow query?","When is a partial index useful?","What does VACUUM do?"]},` +
		`{"technology":"Kubernetes","questions":["What is a readiness probe?","How do you roll back a deployment?","How do requests and limits differ?"]}]}`,
	Ack:   "Great, here are some questions on Go, PostgreSQL and Kubernetes.",
	Reply: "Thanks for the answer! Feel free to continue with any other question.",
}

// TestBasicIntake walks a candidate through every field, the stack questions
// and a goodbye, then checks the saved row.
func TestBasicIntake(t *testing.T) {
	t.Parallel()
	csvPath := filepath.Join(t.TempDir(), "candidates.csv")
	flow := NewTestFlow(t, NewScriptedOracle(fullIntake),
		agent.WithStore(store.NewCSVStore(csvPath), store.DigestHasher{}))
	s := flow.NewSession()

	if s.Greeting() != dialogue.Greeting {
		t.Fatalf("expected greeting %q, got %q", dialogue.Greeting, s.Greeting())
	}

	steps := []struct {
		input  string
		asking candidate.Field
	}{
		{"Hi, I'm Ana Li", candidate.FieldEmail},
		{"ana.li@example.com", candidate.FieldPhone},
		{"+351 912 345 678", candidate.FieldYearsExperience},
		{"about 6 years", candidate.FieldDesiredPositions},
		{"Backend engineer or SRE", candidate.FieldLocation},
		{"Lisbon, Portugal", candidate.FieldTechStack},
	}
	for _, step := range steps {
		resp := Turn(t, flow, s, step.input)
		if resp.Phase != types.PhaseCollecting {
			t.Fatalf("after %q expected phase collecting, got %s", step.input, resp.Phase)
		}
		if resp.Asking != step.asking {
			t.Fatalf("after %q expected to ask %s, got %s", step.input, step.asking, resp.Asking)
		}
		if resp.Message() != dialogue.FieldPrompts[step.asking] {
			t.Errorf("after %q expected prompt %q, got %q", step.input, dialogue.FieldPrompts[step.asking], resp.Message())
		}
	}

	resp := Turn(t, flow, s, "Go, PostgreSQL and Kubernetes")
	if resp.Phase != types.PhaseFreeChat {
		t.Fatalf("expected phase free_chat, got %s", resp.Phase)
	}
	if len(resp.Replies) != 2 {
		t.Fatalf("expected ack and questions, got %d replies", len(resp.Replies))
	}
	if resp.Replies[0] != fullIntake.Ack {
		t.Errorf("expected ack %q, got %q", fullIntake.Ack, resp.Replies[0])
	}
	if !strings.HasPrefix(resp.Replies[1], dialogue.QuestionsHeader) {
		t.Errorf("questions should start with the header, got %q", resp.Replies[1])
	}
	for _, tech := range []string{"**Go**", "**PostgreSQL**", "**Kubernetes**"} {
		if !strings.Contains(resp.Replies[1], tech) {
			t.Errorf("questions should mention %s", tech)
		}
	}
	if len(s.Questions) != 3 {
		t.Errorf("expected 3 question groups, got %d", len(s.Questions))
	}

	resp = Turn(t, flow, s, "A goroutine is scheduled by the Go runtime.")
	if resp.Message() != fullIntake.Reply {
		t.Errorf("expected free chat reply %q, got %q", fullIntake.Reply, resp.Message())
	}

	resp = Turn(t, flow, s, "Goodbye")
	if resp.Phase != types.PhaseEnded || !resp.Saved {
		t.Fatalf("expected ended and saved, got phase %s saved %v", resp.Phase, resp.Saved)
	}
	if resp.Message() != dialogue.ClosingMessage {
		t.Errorf("expected closing message, got %q", resp.Message())
	}

	rows, err := store.NewCSVStore(csvPath).ReadAll(context.Background())
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 saved row, got %d", len(rows))
	}
	row := rows[0]
	want := store.Row{
		FullName:         "Ana Li",
		Email:            store.DigestHasher{}.HashPII("ana.li@example.com"),
		Phone:            store.DigestHasher{}.HashPII("+351 912 345 678"),
		YearsExperience:  "6",
		DesiredPositions: "Backend engineer, SRE",
		Location:         "Lisbon, Portugal",
		TechStack:        "Go, PostgreSQL, Kubernetes",
	}
	if row != want {
		t.Errorf("saved row mismatch:\nwant %+v\ngot  %+v", want, row)
	}
	if !strings.HasPrefix(row.Email, "hash:") {
		t.Errorf("email should be hashed, got %q", row.Email)
	}

	if _, err := flow.HandleTurn(context.Background(), s, "are you there?", nil); err != agent.ErrSessionEnded {
		t.Errorf("expected ErrSessionEnded, got %v", err)
	}
}
