package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"datemate/questionnaire"
)

var ErrInvalidProfile = errors.New("invalid profile")

// Builder provides fluent construction of Profile models
type Builder struct {
	id           uint32
	datingIntent string
	gesture      string
	passion      string
	threeWords   string
	loveLanguage string
	createdAt    time.Time
}

// NewBuilder starts from the default answers
func NewBuilder() *Builder {
	return &Builder{
		datingIntent: questionnaire.IntentLongTerm.String(),
		loveLanguage: questionnaire.LanguageWordsOfAffirmation.String(),
		createdAt:    time.Now(),
	}
}

// NewBuilderFromPayload seeds a builder with submitted answers
func NewBuilderFromPayload(p questionnaire.Payload) *Builder {
	return NewBuilder().
		SetDatingIntent(p.DatingIntent).
		SetGesture(p.Gesture).
		SetPassion(p.Passion).
		SetThreeWords(p.ThreeWords).
		SetLoveLanguage(p.LoveLanguage)
}

func (b *Builder) SetId(id uint32) *Builder {
	b.id = id
	return b
}

// SetDatingIntent takes the verbatim label. It is resolved in Build.
func (b *Builder) SetDatingIntent(label string) *Builder {
	b.datingIntent = label
	return b
}

func (b *Builder) SetGesture(gesture string) *Builder {
	b.gesture = gesture
	return b
}

func (b *Builder) SetPassion(passion string) *Builder {
	b.passion = passion
	return b
}

func (b *Builder) SetThreeWords(threeWords string) *Builder {
	b.threeWords = threeWords
	return b
}

// SetLoveLanguage takes the verbatim label. It is resolved in Build.
func (b *Builder) SetLoveLanguage(label string) *Builder {
	b.loveLanguage = label
	return b
}

func (b *Builder) SetCreatedAt(createdAt time.Time) *Builder {
	b.createdAt = createdAt
	return b
}

// Build validates and constructs the final Profile. Free text is trimmed and must not be blank.
func (b *Builder) Build() (Profile, error) {
	gesture := strings.TrimSpace(b.gesture)
	passion := strings.TrimSpace(b.passion)
	threeWords := strings.TrimSpace(b.threeWords)

	if gesture == "" {
		return Profile{}, fmt.Errorf("%w: %s is required", ErrInvalidProfile, questionnaire.FieldGesture)
	}
	if passion == "" {
		return Profile{}, fmt.Errorf("%w: %s is required", ErrInvalidProfile, questionnaire.FieldPassion)
	}
	if threeWords == "" {
		return Profile{}, fmt.Errorf("%w: %s is required", ErrInvalidProfile, questionnaire.FieldThreeWords)
	}

	intent, err := questionnaire.ParseDatingIntent(b.datingIntent)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	language, err := questionnaire.ParseLoveLanguage(b.loveLanguage)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	return Profile{
		id:           b.id,
		datingIntent: intent,
		gesture:      gesture,
		passion:      passion,
		threeWords:   threeWords,
		loveLanguage: language,
		createdAt:    b.createdAt,
	}, nil
}
