package agent

import (
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/tbxark/talentscout/candidate"
	"github.com/tbxark/talentscout/dialogue"
	"github.com/tbxark/talentscout/language"
	"github.com/tbxark/talentscout/questions"
	"github.com/tbxark/talentscout/types"
)

// Session is everything one candidate conversation owns. It is mutated only
// by the flow processing its turns, one turn at a time.
type Session struct {
	ID         string
	Phase      types.Phase
	Asking     candidate.Field
	Record     *candidate.Record
	Transcript []*schema.Message
	Language   *language.Tracker

	Questions          []questions.TechQuestions
	QuestionsGenerated bool
	SavedRows          int

	instruction *schema.Message
}

func NewSession(detector language.Detector) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		Language: language.NewTracker(detector),
	}
	s.start(dialogue.Greeting)
	return s
}

func (s *Session) start(greeting string) {
	s.Phase = types.PhaseCollecting
	s.Asking = candidate.FieldOrder[0]
	s.Record = &candidate.Record{}
	s.Questions = nil
	s.QuestionsGenerated = false
	s.instruction = nil
	s.Transcript = []*schema.Message{
		schema.SystemMessage(dialogue.SystemPrompt),
		schema.AssistantMessage(greeting, nil),
	}
	if s.Language.Active() != language.Default {
		s.pinLanguage()
	}
}

// Reset starts over with an empty record and transcript. The session ID,
// language choice and saved row count survive.
func (s *Session) Reset() {
	s.start(dialogue.RestartGreeting)
}

// pinLanguage puts the reply-language instruction right after the system prompt,
// replacing an earlier one.
func (s *Session) pinLanguage() {
	content := s.Language.Instruction()
	if s.instruction != nil {
		s.instruction.Content = content
		return
	}
	s.instruction = schema.SystemMessage(content)
	transcript := make([]*schema.Message, 0, len(s.Transcript)+1)
	transcript = append(transcript, s.Transcript[0], s.instruction)
	transcript = append(transcript, s.Transcript[1:]...)
	s.Transcript = transcript
}

func (s *Session) Ended() bool {
	return s.Phase == types.PhaseEnded
}

func (s *Session) appendUser(text string) {
	s.Transcript = append(s.Transcript, schema.UserMessage(text))
}

func (s *Session) appendAssistant(text string) {
	s.Transcript = append(s.Transcript, schema.AssistantMessage(text, nil))
}

// Greeting returns the assistant message shown before the first turn.
func (s *Session) Greeting() string {
	for _, m := range s.Transcript {
		if m.Role == schema.Assistant {
			return m.Content
		}
	}
	return ""
}
