package questionnaire

import "fmt"

// Field names the five answers. The string value is the wire key.
type Field string

const (
	FieldDatingIntent Field = "dating_intent"
	FieldGesture      Field = "gesture"
	FieldPassion      Field = "passion"
	FieldThreeWords   Field = "three_words"
	FieldLoveLanguage Field = "love_language"
)

// Fields returns the answer fields in form order
func Fields() []Field {
	return []Field{FieldDatingIntent, FieldGesture, FieldPassion, FieldThreeWords, FieldLoveLanguage}
}

// IsFreeText returns true for the fields that take arbitrary user text
func (f Field) IsFreeText() bool {
	return f == FieldGesture || f == FieldPassion || f == FieldThreeWords
}

// Payload is the body of a profile submission. Every value is a string:
// enum answers travel as their verbatim labels.
type Payload struct {
	DatingIntent string `json:"dating_intent"`
	Gesture      string `json:"gesture"`
	Passion      string `json:"passion"`
	ThreeWords   string `json:"three_words"`
	LoveLanguage string `json:"love_language"`
}

// Summary renders the answers as the sentence sequence used for similarity matching
func (p Payload) Summary() string {
	return fmt.Sprintf("Dating intent: %s. Love language: %s. Gesture: %s. Passion: %s. Three words: %s.",
		p.DatingIntent, p.LoveLanguage, p.Gesture, p.Passion, p.ThreeWords)
}
