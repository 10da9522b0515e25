package dialogue

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbxark/talentscout/candidate"
	"github.com/tbxark/talentscout/oracle/oracletest"
	"github.com/tbxark/talentscout/questions"
	"github.com/tbxark/talentscout/types"
)

type request = types.ToolRequest[*candidate.Record]

func TestFieldPrompts(t *testing.T) {
	for _, field := range candidate.FieldOrder {
		assert.NotEmpty(t, FieldPrompts[field], field)
	}
	assert.Equal(t, "Please share your email address.", FieldPrompt(candidate.FieldEmail))
	assert.Equal(t, "Could you tell me your nickname?", FieldPrompt(candidate.Field("nickname")))
}

func TestFormatQuestions(t *testing.T) {
	out := FormatQuestions([]questions.TechQuestions{
		{Technology: "Go", Questions: []string{"What is a goroutine?", "Explain channels."}},
		{Technology: "Postgres", Questions: []string{"What is MVCC?"}},
	})
	assert.Equal(t, QuestionsHeader+
		"\n- **Go**\n    1. What is a goroutine?\n    2. Explain channels."+
		"\n- **Postgres**\n    1. What is MVCC?", out)
}

func TestOracleDialogueGeneratorStreams(t *testing.T) {
	fake := &oracletest.Fake{
		ReplyFunc: func(ctx context.Context, messages []*schema.Message) (string, error) {
			return "Happy to help with that question.", nil
		},
	}
	gen := NewOracleDialogueGenerator[*candidate.Record](fake)
	req := &request{Phase: types.PhaseFreeChat, Messages: []*schema.Message{schema.UserMessage("hi")}}

	stream, err := gen.GenerateDialogueStream(context.Background(), req)
	require.NoError(t, err)
	var chunks []string
	text, err := Collect(stream, func(s string) { chunks = append(chunks, s) })
	require.NoError(t, err)
	assert.Equal(t, "Happy to help with that question.", text)
	assert.Greater(t, len(chunks), 1)

	text, err = gen.GenerateDialogue(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Happy to help with that question.", text)

	_, err = gen.GenerateDialogue(context.Background(), &request{})
	assert.Error(t, err)
}

func TestLocalDialogueGenerator(t *testing.T) {
	gen := &LocalDialogueGenerator[*candidate.Record]{}
	spec := candidate.Spec{}
	ctx := context.Background()

	msg, err := gen.GenerateDialogue(ctx, &request{
		Phase:         types.PhaseCollecting,
		MissingFields: spec.MissingFacts(&candidate.Record{FullName: "Ana Li"}),
	})
	require.NoError(t, err)
	assert.Equal(t, FieldPrompts[candidate.FieldEmail], msg)

	msg, err = gen.GenerateDialogue(ctx, &request{Phase: types.PhaseAwaitingStackQuestions})
	require.NoError(t, err)
	assert.Equal(t, QuestionsAck, msg)

	msg, err = gen.GenerateDialogue(ctx, &request{Phase: types.PhaseFreeChat})
	require.NoError(t, err)
	assert.Equal(t, ReplyApology, msg)
}

func TestFailbackDialogueGenerator(t *testing.T) {
	broken := NewOracleDialogueGenerator[*candidate.Record](&oracletest.Fake{
		ReplyFunc: func(ctx context.Context, messages []*schema.Message) (string, error) {
			return "", errors.New("offline")
		},
	})
	gen := NewFailbackDialogueGenerator[*candidate.Record](broken, &LocalDialogueGenerator[*candidate.Record]{})
	req := &request{Phase: types.PhaseFreeChat, Messages: []*schema.Message{schema.UserMessage("hi")}}

	stream, err := gen.GenerateDialogueStream(context.Background(), req)
	require.NoError(t, err)
	text, err := Collect(stream, nil)
	require.NoError(t, err)
	assert.Equal(t, ReplyApology, text)

	_, err = NewFailbackDialogueGenerator[*candidate.Record](broken).GenerateDialogue(context.Background(), req)
	assert.Error(t, err)
}

func TestOracleLocalizer(t *testing.T) {
	fake := &oracletest.Fake{
		TranslateFunc: func(ctx context.Context, text, lang string) (string, error) {
			if lang == "Hindi" {
				return "अपना ईमेल पता साझा करें।", nil
			}
			return "", errors.New("unsupported")
		},
	}
	l := NewOracleLocalizer(fake)
	ctx := context.Background()
	prompt := FieldPrompts[candidate.FieldEmail]

	assert.Equal(t, prompt, l.Localize(ctx, prompt, "en"))
	assert.Equal(t, prompt, l.Localize(ctx, prompt, "nl"), "unknown languages are not translated")
	assert.Equal(t, 0, fake.TranslateCalls())

	assert.Equal(t, "अपना ईमेल पता साझा करें।", l.Localize(ctx, prompt, "hi"))
	assert.Equal(t, prompt, l.Localize(ctx, prompt, "ta"), "failures keep English")
	assert.Equal(t, 2, fake.TranslateCalls())
}
