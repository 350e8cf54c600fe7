package profile

import (
	"time"

	"datemate/questionnaire"
)

const (
	EnvEventTopicStatus = "EVENT_TOPIC_PROFILE_STATUS"

	EventProfileCreated = "PROFILE_CREATED"
)

// Event is the envelope of every profile status event
type Event[E any] struct {
	ProfileId uint32 `json:"profileId"`
	Type      string `json:"type"`
	Body      E      `json:"body"`
}

// CreatedBody carries the stored answers of a newly created profile
type CreatedBody struct {
	DatingIntent string    `json:"datingIntent"`
	Gesture      string    `json:"gesture"`
	Passion      string    `json:"passion"`
	ThreeWords   string    `json:"threeWords"`
	LoveLanguage string    `json:"loveLanguage"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (b CreatedBody) Payload() questionnaire.Payload {
	return questionnaire.Payload{
		DatingIntent: b.DatingIntent,
		Gesture:      b.Gesture,
		Passion:      b.Passion,
		ThreeWords:   b.ThreeWords,
		LoveLanguage: b.LoveLanguage,
	}
}
