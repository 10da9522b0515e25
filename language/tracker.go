package language

import "fmt"

const respondInTemplate = "From now on, respond in %s. Keep answers concise and friendly."

// Tracker holds the active language of one session. Auto detection switches
// at most once away from the default; a manual override always wins and
// turns detection off.
type Tracker struct {
	detector Detector
	active   string
	pinned   bool
	manual   bool
}

func NewTracker(detector Detector) *Tracker {
	if detector == nil {
		detector = WhatlangDetector{}
	}
	return &Tracker{detector: detector, active: Default}
}

func (t *Tracker) Active() string {
	return t.active
}

func (t *Tracker) Manual() bool {
	return t.manual
}

// Observe inspects one user turn and reports whether the active language changed.
func (t *Tracker) Observe(text string) bool {
	if t.pinned || t.manual || t.active != Default {
		return false
	}
	code, ok := Guess(t.detector, text)
	if !ok || code == t.active {
		return false
	}
	t.active = code
	t.pinned = true
	return true
}

// Override sets the language by hand. It reports whether the active language changed.
func (t *Tracker) Override(code string) bool {
	t.manual = true
	if code == "" {
		code = Default
	}
	changed := code != t.active
	t.active = code
	return changed
}

// Translatable reports whether fixed prompts must be translated before display.
func (t *Tracker) Translatable() bool {
	return t.active != Default && Known(t.active)
}

func (t *Tracker) Name() string {
	return Name(t.active)
}

// Instruction is the system message that pins the reply language.
func (t *Tracker) Instruction() string {
	return fmt.Sprintf(respondInTemplate, t.Name())
}
