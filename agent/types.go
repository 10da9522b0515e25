package agent

import (
	"errors"

	"github.com/tbxark/talentscout/candidate"
	"github.com/tbxark/talentscout/sentiment"
	"github.com/tbxark/talentscout/types"
)

var (
	ErrSessionEnded        = errors.New("session has ended; reset it to start a new candidate")
	ErrPersistenceDisabled = errors.New("saving candidates is disabled")
)

// StreamEvent carries one fragment of an assistant message. Done marks the
// end of that message.
type StreamEvent struct {
	Text string
	Done bool
}

type StreamHandler func(event StreamEvent)

type TurnResult struct {
	// Replies holds every assistant message emitted during the turn, in order.
	Replies  []string          `json:"replies"`
	Phase    types.Phase       `json:"phase"`
	Asking   candidate.Field   `json:"asking,omitempty"`
	Changed  []candidate.Field `json:"changed,omitempty"`
	Mood     sentiment.Mood    `json:"mood,omitempty"`
	Score    float64           `json:"score"`
	Language string            `json:"language"`
	// LanguageSwitched is set when this turn pinned a new reply language.
	LanguageSwitched bool     `json:"language_switched,omitempty"`
	Saved            bool     `json:"saved,omitempty"`
	Warnings         []string `json:"warnings,omitempty"`
}

// Message joins the replies into one block of text.
func (r *TurnResult) Message() string {
	out := ""
	for i, reply := range r.Replies {
		if i > 0 {
			out += "\n\n"
		}
		out += reply
	}
	return out
}
