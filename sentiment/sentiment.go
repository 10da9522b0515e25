// Package sentiment gives a rough mood reading of a candidate's message.
package sentiment

import (
	"math"
	"strings"
	"unicode"
)

type Mood string

const (
	Positive Mood = "positive"
	Neutral  Mood = "neutral"
	Negative Mood = "negative"
)

type Analyzer interface {
	// Score returns a compound polarity in [-1, 1].
	Score(text string) float64
}

// MoodOf buckets a compound score.
func MoodOf(score float64) Mood {
	switch {
	case score > 0.2:
		return Positive
	case score >= -0.2:
		return Neutral
	default:
		return Negative
	}
}

const (
	normalizationAlpha = 15
	negationScalar     = -0.74
	boostIncrement     = 0.293
	negationWindow     = 3
)

var defaultLexicon = map[string]float64{
	"good": 1.9, "great": 3.1, "excellent": 2.7, "awesome": 3.1, "amazing": 2.8,
	"love": 3.2, "like": 1.5, "happy": 2.7, "glad": 2.0, "excited": 2.2,
	"nice": 1.8, "cool": 1.3, "fine": 0.8, "thanks": 1.9, "thank": 1.5,
	"perfect": 2.7, "enjoy": 2.2, "interesting": 1.7, "helpful": 1.7, "sure": 1.3,
	"yes": 1.7, "wonderful": 2.7, "fantastic": 2.6, "best": 3.2, "passionate": 2.2,
	"bad": -2.5, "terrible": -2.1, "awful": -2.0, "hate": -2.7, "angry": -2.3,
	"sad": -2.1, "annoyed": -1.6, "annoying": -1.8, "boring": -1.3, "worst": -3.1,
	"poor": -2.1, "difficult": -1.5, "hard": -0.4, "confused": -1.3, "confusing": -1.1,
	"stupid": -2.4, "useless": -1.8, "frustrated": -2.0, "frustrating": -1.9, "problem": -1.7,
	"worried": -1.9, "nervous": -1.4, "tired": -1.9, "unfortunately": -1.6, "no": -1.2,
}

var negations = map[string]bool{
	"not": true, "no": true, "never": true, "dont": true, "don't": true, "isn't": true,
	"isnt": true, "wasn't": true, "wasnt": true, "can't": true, "cant": true, "cannot": true,
	"won't": true, "wont": true, "didn't": true, "didnt": true, "nothing": true, "neither": true,
}

var boosters = map[string]float64{
	"very": boostIncrement, "really": boostIncrement, "extremely": boostIncrement,
	"so": boostIncrement, "super": boostIncrement, "totally": boostIncrement,
	"slightly": -boostIncrement, "somewhat": -boostIncrement, "barely": -boostIncrement,
}

// LexiconAnalyzer scores English text with a small valence lexicon. Negation
// within three preceding words flips and dampens a term; boosters scale it;
// exclamation marks add emphasis. The sum is squashed with x/sqrt(x²+15).
type LexiconAnalyzer struct {
	Lexicon map[string]float64
}

func NewLexiconAnalyzer() *LexiconAnalyzer {
	return &LexiconAnalyzer{Lexicon: defaultLexicon}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

func (a *LexiconAnalyzer) Score(text string) float64 {
	lexicon := a.Lexicon
	if lexicon == nil {
		lexicon = defaultLexicon
	}
	tokens := tokenize(text)
	sum := 0.0
	for i, token := range tokens {
		valence, ok := lexicon[token]
		if !ok || negations[token] && i+1 < len(tokens) {
			continue
		}
		if i > 0 {
			if boost, ok := boosters[tokens[i-1]]; ok {
				if valence > 0 {
					valence += boost
				} else {
					valence -= boost
				}
			}
		}
		for j := i - 1; j >= 0 && j >= i-negationWindow; j-- {
			if negations[tokens[j]] {
				valence *= negationScalar
				break
			}
		}
		sum += valence
	}
	if sum == 0 {
		return 0
	}
	if bangs := strings.Count(text, "!"); bangs > 0 {
		emphasis := math.Min(float64(bangs), 4) * 0.292
		if sum > 0 {
			sum += emphasis
		} else {
			sum -= emphasis
		}
	}
	return sum / math.Sqrt(sum*sum+normalizationAlpha)
}
