// Package language detects the candidate's language and tracks the one a
// session is pinned to.
package language

import (
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const (
	Default       = "en"
	MinConfidence = 0.80

	minLatinLetters    = 10
	minNonLatinLetters = 3
)

// Names maps the languages prompts are translated into to their display names.
var Names = map[string]string{
	"en":    "English",
	"hi":    "Hindi",
	"bn":    "Bengali",
	"ta":    "Tamil",
	"te":    "Telugu",
	"ml":    "Malayalam",
	"kn":    "Kannada",
	"mr":    "Marathi",
	"pa":    "Punjabi",
	"gu":    "Gujarati",
	"or":    "Odia",
	"as":    "Assamese",
	"ur":    "Urdu",
	"es":    "Spanish",
	"fr":    "French",
	"de":    "German",
	"pt":    "Portuguese",
	"it":    "Italian",
	"ru":    "Russian",
	"ja":    "Japanese",
	"zh-cn": "Chinese (Simplified)",
}

type Detector interface {
	// Detect returns the most likely ISO-639-1 code and its confidence in [0,1].
	Detect(text string) (code string, confidence float64, ok bool)
}

// Name returns a human readable name for code.
func Name(code string) string {
	if name, ok := Names[code]; ok {
		return name
	}
	if tag, err := language.Parse(code); err == nil {
		if name := display.English.Languages().Name(tag); name != "" {
			return name
		}
	}
	return code
}

// Known reports whether prompts can be translated into code.
func Known(code string) bool {
	_, ok := Names[code]
	return ok
}

func sanitize(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, text)
}

// Guess returns a non-default language code for text when the text carries
// enough signal: at least 10 letters, or 3 when any letter is outside ASCII,
// and a top result at MinConfidence or above.
func Guess(detector Detector, text string) (string, bool) {
	sanitized := sanitize(text)
	letters := 0
	nonLatin := false
	for _, r := range sanitized {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if r > unicode.MaxASCII {
			nonLatin = true
		}
	}
	minLetters := minLatinLetters
	if nonLatin {
		minLetters = minNonLatinLetters
	}
	if letters < minLetters {
		return "", false
	}
	code, confidence, ok := detector.Detect(sanitized)
	if !ok || code == "" || code == Default || confidence < MinConfidence {
		return "", false
	}
	return code, true
}

var iso6393To6391 = map[string]string{
	"eng": "en", "hin": "hi", "ben": "bn", "tam": "ta", "tel": "te",
	"mal": "ml", "kan": "kn", "mar": "mr", "pan": "pa", "guj": "gu",
	"ori": "or", "asm": "as", "urd": "ur", "spa": "es", "fra": "fr",
	"deu": "de", "por": "pt", "ita": "it", "rus": "ru", "jpn": "ja",
	"cmn": "zh-cn", "nld": "nl", "tur": "tr", "ukr": "uk", "pol": "pl",
	"arb": "ar", "pes": "fa", "kor": "ko", "vie": "vi", "ind": "id",
	"tha": "th", "swe": "sv", "ces": "cs", "ell": "el", "heb": "he",
	"nep": "ne", "sin": "si", "ron": "ro", "hun": "hu", "dan": "da",
	"fin": "fi", "nob": "nb", "bul": "bg", "hrv": "hr", "srp": "sr",
}

// WhatlangDetector detects languages with trigram profiles from whatlanggo.
type WhatlangDetector struct{}

func (WhatlangDetector) Detect(text string) (string, float64, bool) {
	info := whatlanggo.Detect(text)
	iso3 := info.Lang.Iso6393()
	if iso3 == "" {
		return "", 0, false
	}
	if code, ok := iso6393To6391[iso3]; ok {
		return code, info.Confidence, true
	}
	return iso3, info.Confidence, true
}
