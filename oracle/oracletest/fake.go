// Package oracletest provides a scripted Oracle for deterministic tests.
package oracletest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/talentscout/oracle"
)

var ErrNotScripted = errors.New("oracletest: no response scripted")

var _ oracle.Oracle = (*Fake)(nil)

// Fake answers oracle calls from the configured functions and records how
// often each operation was called. A nil function makes the call fail.
type Fake struct {
	JSONFunc      func(ctx context.Context, messages []*schema.Message, tool *schema.ToolInfo) (string, error)
	ReplyFunc     func(ctx context.Context, messages []*schema.Message) (string, error)
	TranslateFunc func(ctx context.Context, text, language string) (string, error)

	mu         sync.Mutex
	jsonCalls  map[string]int
	streams    int
	translates int
}

func (f *Fake) StreamChat(ctx context.Context, messages []*schema.Message, _ ...model.Option) (*schema.StreamReader[string], error) {
	f.mu.Lock()
	f.streams++
	f.mu.Unlock()
	if f.ReplyFunc == nil {
		return nil, ErrNotScripted
	}
	text, err := f.ReplyFunc(ctx, messages)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray(Fragments(text)), nil
}

func (f *Fake) JSONChat(ctx context.Context, messages []*schema.Message, tool *schema.ToolInfo, _ ...model.Option) (string, error) {
	f.mu.Lock()
	if f.jsonCalls == nil {
		f.jsonCalls = map[string]int{}
	}
	f.jsonCalls[tool.Name]++
	f.mu.Unlock()
	if f.JSONFunc == nil {
		return "", ErrNotScripted
	}
	return f.JSONFunc(ctx, messages, tool)
}

func (f *Fake) Translate(ctx context.Context, text, language string) (string, error) {
	f.mu.Lock()
	f.translates++
	f.mu.Unlock()
	if f.TranslateFunc == nil {
		return "", ErrNotScripted
	}
	return f.TranslateFunc(ctx, text, language)
}

// JSONCalls returns how many times the tool with the given name was forced.
func (f *Fake) JSONCalls(tool string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jsonCalls[tool]
}

func (f *Fake) StreamCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.streams
}

func (f *Fake) TranslateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.translates
}

// Fragments splits text into word-sized fragments that concatenate back to text.
func Fragments(text string) []string {
	if text == "" {
		return nil
	}
	words := strings.SplitAfter(text, " ")
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
