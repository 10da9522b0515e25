package testcases

import (
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/talentscout/candidate"
	"github.com/tbxark/talentscout/dialogue"
	"github.com/tbxark/talentscout/language"
)

// TestLanguageSwitch checks that a Spanish speaker gets translated prompts and
// that a manual override survives a restart.
func TestLanguageSwitch(t *testing.T) {
	t.Parallel()
	fake := NewScriptedOracle(Script{
		Snapshots: map[string]string{
			"Hola, mi nombre es Ana García": `{"full_name":"Ana García"}`,
		},
	})
	flow := NewTestFlow(t, fake)
	s := flow.NewSession()

	resp := Turn(t, flow, s, "Hola, mi nombre es Ana García")
	if !resp.LanguageSwitched || resp.Language != "es" {
		t.Fatalf("expected switch to es, got switched=%v lang=%s", resp.LanguageSwitched, resp.Language)
	}
	want := "[es] " + dialogue.FieldPrompts[candidate.FieldEmail]
	if resp.Message() != want {
		t.Errorf("expected %q, got %q", want, resp.Message())
	}
	if fake.TranslateCalls() != 1 {
		t.Errorf("expected 1 translation, got %d", fake.TranslateCalls())
	}
	if s.Transcript[1].Role != schema.System || !strings.Contains(s.Transcript[1].Content, language.Name("es")) {
		t.Errorf("expected the language instruction right after the system prompt, got %+v", s.Transcript[1])
	}

	// Short turns never change the language.
	resp = Turn(t, flow, s, "ok")
	if resp.LanguageSwitched || resp.Language != "es" {
		t.Errorf("short turn should keep es, got switched=%v lang=%s", resp.LanguageSwitched, resp.Language)
	}

	flow.OverrideLanguage(s, "fr")
	resp = Turn(t, flow, s, "hola, una pregunta más")
	if resp.Language != "fr" {
		t.Errorf("override should disable detection, got %s", resp.Language)
	}
	if !strings.HasPrefix(resp.Message(), "[fr] ") {
		t.Errorf("expected a French prompt, got %q", resp.Message())
	}

	flow.Reset(s)
	if s.Greeting() != dialogue.RestartGreeting {
		t.Errorf("expected restart greeting, got %q", s.Greeting())
	}
	if s.Language.Active() != "fr" {
		t.Errorf("language should survive a restart, got %s", s.Language.Active())
	}
	if len(s.Transcript) < 2 || !strings.Contains(s.Transcript[1].Content, "French") {
		t.Errorf("restart should keep the language instruction, transcript %+v", s.Transcript)
	}
	if s.Record.Has(candidate.FieldFullName) {
		t.Error("restart should clear the record")
	}
}

// TestUntranslatableLanguage keeps English prompts for languages without a
// known display name.
func TestUntranslatableLanguage(t *testing.T) {
	t.Parallel()
	fake := NewScriptedOracle(Script{})
	flow := NewTestFlow(t, fake)
	s := flow.NewSession()

	flow.OverrideLanguage(s, "xx")
	resp := Turn(t, flow, s, "my name is")
	if resp.Message() != dialogue.FieldPrompts[candidate.FieldFullName] {
		t.Errorf("expected English prompt, got %q", resp.Message())
	}
	if fake.TranslateCalls() != 0 {
		t.Errorf("expected no translation, got %d", fake.TranslateCalls())
	}
}
