package intake

import (
	"fmt"
	"strings"
	"sync"

	"datemate/questionnaire"
)

// Draft is a snapshot of the five answers as currently entered
type Draft struct {
	DatingIntent questionnaire.DatingIntent
	Gesture      string
	Passion      string
	ThreeWords   string
	LoveLanguage questionnaire.LoveLanguage
}

// IsSubmittable returns true iff every free-text answer is non-empty after trimming.
// The enum answers always hold a valid value and are not part of the check.
func (d Draft) IsSubmittable() bool {
	return strings.TrimSpace(d.Gesture) != "" &&
		strings.TrimSpace(d.Passion) != "" &&
		strings.TrimSpace(d.ThreeWords) != ""
}

// Payload returns the wire body: trimmed free text and verbatim enum labels
func (d Draft) Payload() questionnaire.Payload {
	return questionnaire.Payload{
		DatingIntent: d.DatingIntent.String(),
		Gesture:      strings.TrimSpace(d.Gesture),
		Passion:      strings.TrimSpace(d.Passion),
		ThreeWords:   strings.TrimSpace(d.ThreeWords),
		LoveLanguage: d.LoveLanguage.String(),
	}
}

// Form holds the answers being edited. Writes never validate.
// Once frozen every write is ignored.
type Form struct {
	mu     sync.RWMutex
	draft  Draft
	frozen bool
}

// NewForm creates a form with every answer at its default
func NewForm() *Form {
	return &Form{}
}

// Snapshot returns a copy of the current answers
func (f *Form) Snapshot() Draft {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.draft
}

// IsSubmittable is derived from the current answers on every call
func (f *Form) IsSubmittable() bool {
	return f.Snapshot().IsSubmittable()
}

// SetField replaces one answer by wire name. Enum answers must be given as one of their labels.
func (f *Form) SetField(name questionnaire.Field, value string) error {
	switch name {
	case questionnaire.FieldDatingIntent:
		d, err := questionnaire.ParseDatingIntent(value)
		if err != nil {
			return err
		}
		f.SetDatingIntent(d)
	case questionnaire.FieldLoveLanguage:
		l, err := questionnaire.ParseLoveLanguage(value)
		if err != nil {
			return err
		}
		f.SetLoveLanguage(l)
	case questionnaire.FieldGesture:
		f.SetGesture(value)
	case questionnaire.FieldPassion:
		f.SetPassion(value)
	case questionnaire.FieldThreeWords:
		f.SetThreeWords(value)
	default:
		return fmt.Errorf("unknown field %q", name)
	}
	return nil
}

// Freeze locks the answers. The controller freezes its form when a submission succeeds.
func (f *Form) Freeze() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frozen = true
}

// IsFrozen returns true once the answers are locked
func (f *Form) IsFrozen() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.frozen
}

// SetDatingIntent replaces the dating intent answer
func (f *Form) SetDatingIntent(d questionnaire.DatingIntent) {
	f.update(func(dr *Draft) { dr.DatingIntent = d })
}

// SetLoveLanguage replaces the love language answer
func (f *Form) SetLoveLanguage(l questionnaire.LoveLanguage) {
	f.update(func(dr *Draft) { dr.LoveLanguage = l })
}

// SetGesture replaces the gesture answer as typed
func (f *Form) SetGesture(v string) {
	f.update(func(dr *Draft) { dr.Gesture = v })
}

// SetPassion replaces the passion answer as typed
func (f *Form) SetPassion(v string) {
	f.update(func(dr *Draft) { dr.Passion = v })
}

// SetThreeWords replaces the three words answer as typed
func (f *Form) SetThreeWords(v string) {
	f.update(func(dr *Draft) { dr.ThreeWords = v })
}

func (f *Form) update(fn func(*Draft)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.frozen {
		return
	}
	fn(&f.draft)
}
