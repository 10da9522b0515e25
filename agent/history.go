package agent

import (
	"github.com/cloudwego/eino/schema"
)

type Trimmer interface {
	Trim(history []*schema.Message) []*schema.Message
}

// KeepSystemLastNTrimmer keeps the system prompt and language instruction
// plus the last N candidate and assistant messages. Nil messages are dropped.
// When N <= 0 only system messages survive.
type KeepSystemLastNTrimmer struct {
	N int
}

func (t KeepSystemLastNTrimmer) Trim(history []*schema.Message) []*schema.Message {
	budget := t.N
	keep := make([]bool, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		m := history[i]
		switch {
		case m == nil:
		case m.Role == schema.System:
			keep[i] = true
		case budget > 0:
			keep[i] = true
			budget--
		}
	}
	out := make([]*schema.Message, 0, len(history))
	for i, m := range history {
		if keep[i] {
			out = append(out, m)
		}
	}
	return out
}
