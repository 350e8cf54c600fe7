package profile

import (
	"time"

	"datemate/questionnaire"
)

// Profile is an immutable, validated set of questionnaire answers
type Profile struct {
	id           uint32
	datingIntent questionnaire.DatingIntent
	gesture      string
	passion      string
	threeWords   string
	loveLanguage questionnaire.LoveLanguage
	createdAt    time.Time
}

func (p Profile) Id() uint32 {
	return p.id
}

func (p Profile) DatingIntent() questionnaire.DatingIntent {
	return p.datingIntent
}

func (p Profile) Gesture() string {
	return p.gesture
}

func (p Profile) Passion() string {
	return p.passion
}

func (p Profile) ThreeWords() string {
	return p.threeWords
}

func (p Profile) LoveLanguage() questionnaire.LoveLanguage {
	return p.loveLanguage
}

func (p Profile) CreatedAt() time.Time {
	return p.createdAt
}

// Payload returns the answers in their wire form
func (p Profile) Payload() questionnaire.Payload {
	return questionnaire.Payload{
		DatingIntent: p.datingIntent.String(),
		Gesture:      p.gesture,
		Passion:      p.passion,
		ThreeWords:   p.threeWords,
		LoveLanguage: p.loveLanguage.String(),
	}
}

// Text is the document indexed for similarity matching
func (p Profile) Text() string {
	return p.Payload().Summary()
}
