package questionnaire

import (
	"errors"
	"fmt"
)

// ErrUnknownLabel is returned when a label is not part of a closed answer set
var ErrUnknownLabel = errors.New("unknown label")

// DatingIntent is the closed set of answers to "what are you looking for"
type DatingIntent uint8

const (
	// IntentLongTerm is the default dating intent
	IntentLongTerm DatingIntent = iota
	IntentSeeWhereItGoes
	IntentCasual
	IntentFiguringItOut
)

var datingIntentLabels = []string{
	"Something meaningful, open to long-term",
	"Going on dates and seeing where it goes",
	"Short-term or more casual right now",
	"Figuring it out, open to surprises",
}

// String returns the verbatim label transmitted on the wire
func (d DatingIntent) String() string {
	if int(d) < len(datingIntentLabels) {
		return datingIntentLabels[d]
	}
	return "unknown"
}

// Valid returns true if the value is one of the closed set
func (d DatingIntent) Valid() bool {
	return int(d) < len(datingIntentLabels)
}

// DatingIntentLabels returns the labels in presentation order
func DatingIntentLabels() []string {
	return append([]string(nil), datingIntentLabels...)
}

// DatingIntents returns every dating intent in presentation order
func DatingIntents() []DatingIntent {
	out := make([]DatingIntent, len(datingIntentLabels))
	for i := range datingIntentLabels {
		out[i] = DatingIntent(i)
	}
	return out
}

// ParseDatingIntent resolves a verbatim label
func ParseDatingIntent(label string) (DatingIntent, error) {
	for i, l := range datingIntentLabels {
		if l == label {
			return DatingIntent(i), nil
		}
	}
	return IntentLongTerm, fmt.Errorf("dating intent %q: %w", label, ErrUnknownLabel)
}

// LoveLanguage is the closed set of love language answers
type LoveLanguage uint8

const (
	// LanguageWordsOfAffirmation is the default love language
	LanguageWordsOfAffirmation LoveLanguage = iota
	LanguageQualityTime
	LanguagePhysicalTouch
	LanguageActsOfService
	LanguageGifts
)

var loveLanguageLabels = []string{
	"Words of affirmation",
	"Quality time",
	"Physical touch",
	"Acts of service",
	"Giving or receiving gifts",
}

// String returns the verbatim label transmitted on the wire
func (l LoveLanguage) String() string {
	if int(l) < len(loveLanguageLabels) {
		return loveLanguageLabels[l]
	}
	return "unknown"
}

// Valid returns true if the value is one of the closed set
func (l LoveLanguage) Valid() bool {
	return int(l) < len(loveLanguageLabels)
}

// LoveLanguageLabels returns the labels in presentation order
func LoveLanguageLabels() []string {
	return append([]string(nil), loveLanguageLabels...)
}

// LoveLanguages returns every love language in presentation order
func LoveLanguages() []LoveLanguage {
	out := make([]LoveLanguage, len(loveLanguageLabels))
	for i := range loveLanguageLabels {
		out[i] = LoveLanguage(i)
	}
	return out
}

// ParseLoveLanguage resolves a verbatim label
func ParseLoveLanguage(label string) (LoveLanguage, error) {
	for i, l := range loveLanguageLabels {
		if l == label {
			return LoveLanguage(i), nil
		}
	}
	return LanguageWordsOfAffirmation, fmt.Errorf("love language %q: %w", label, ErrUnknownLabel)
}
