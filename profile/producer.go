package profile

import (
	profileMsg "datemate/kafka/message/profile"

	"github.com/Chronicle20/atlas-kafka/producer"
	"github.com/Chronicle20/atlas-model/model"
	"github.com/segmentio/kafka-go"
)

// CreatedEventProvider creates a provider for profile created events, keyed by profile id
func CreatedEventProvider(p Profile) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(p.Id()))
	value := &profileMsg.Event[profileMsg.CreatedBody]{
		ProfileId: p.Id(),
		Type:      profileMsg.EventProfileCreated,
		Body: profileMsg.CreatedBody{
			DatingIntent: p.DatingIntent().String(),
			Gesture:      p.Gesture(),
			Passion:      p.Passion(),
			ThreeWords:   p.ThreeWords(),
			LoveLanguage: p.LoveLanguage().String(),
			CreatedAt:    p.CreatedAt(),
		},
	}
	return producer.SingleMessageProvider(key, value)
}
