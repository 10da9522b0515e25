package command

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
)

// DefaultExitKeywords end the conversation when sent as the whole turn.
var DefaultExitKeywords = []string{
	"quit", "exit", "bye", "goodbye", "stop", "end", "thanks", "thank you",
	// Hindi, Marathi
	"अलविदा", "धन्यवाद", "बाय",
	// Bengali, Assamese
	"বিদায়", "ধন্যবাদ",
	// Tamil
	"நன்றி", "விடைபெறுகிறேன்",
	// Telugu
	"ధన్యవాదాలు", "వీడ్కోలు",
	// Malayalam
	"നന്ദി", "വിട",
	// Kannada
	"ಧನ್ಯವಾದಗಳು", "ವಿದಾಯ",
	// Punjabi
	"ਧੰਨਵਾਦ", "ਅਲਵਿਦਾ",
	// Gujarati
	"આભાર", "આવજો",
	// Odia
	"ଧନ୍ୟବାଦ", "ବିଦାୟ",
	// Urdu
	"شکریہ", "الوداع",
	// romanized
	"dhanyavaad", "shukriya", "alvida", "tata",
}

type LocalCommandParser struct {
	keywords map[string]struct{}
}

func NewLocalCommandParser(keywords ...string) *LocalCommandParser {
	if len(keywords) == 0 {
		keywords = DefaultExitKeywords
	}
	p := &LocalCommandParser{
		keywords: make(map[string]struct{}, len(keywords)),
	}
	for _, keyword := range keywords {
		p.keywords[normalize(keyword)] = struct{}{}
	}
	return p
}

// normalize builds a fresh Caser per call; a Caser must not be shared across goroutines.
func normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// IsExit matches the whole turn, trimmed and case folded, against the keyword set.
func (p *LocalCommandParser) IsExit(input string) bool {
	_, ok := p.keywords[normalize(input)]
	return ok
}

func (p *LocalCommandParser) ParseCommand(ctx context.Context, input string) (Command, error) {
	if p.IsExit(input) {
		return Exit, nil
	}
	return None, nil
}

type FailbackCommandParser struct {
	parsers []Parser
}

func NewFailbackCommandParser(parsers ...Parser) *FailbackCommandParser {
	return &FailbackCommandParser{parsers: parsers}
}

func (p *FailbackCommandParser) ParseCommand(ctx context.Context, input string) (Command, error) {
	var lastErr error
	for _, parser := range p.parsers {
		cmd, err := parser.ParseCommand(ctx, input)
		if err == nil {
			return cmd, nil
		}
		lastErr = err
	}
	return None, lastErr
}
