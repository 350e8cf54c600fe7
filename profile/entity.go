package profile

import (
	"time"

	"gorm.io/gorm"
)

// Entity is the row stored for a profile. Enum answers are stored as their labels.
type Entity struct {
	ID           uint32    `gorm:"column:profile_id;primaryKey;autoIncrement"`
	DatingIntent string    `gorm:"not null"`
	Gesture      string    `gorm:"not null"`
	Passion      string    `gorm:"not null"`
	ThreeWords   string    `gorm:"not null"`
	LoveLanguage string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (Entity) TableName() string {
	return "profiles"
}

func Migration(db *gorm.DB) error {
	return db.AutoMigrate(&Entity{})
}

// Make transforms an entity to a domain model
func Make(e Entity) (Profile, error) {
	return NewBuilder().
		SetId(e.ID).
		SetDatingIntent(e.DatingIntent).
		SetGesture(e.Gesture).
		SetPassion(e.Passion).
		SetThreeWords(e.ThreeWords).
		SetLoveLanguage(e.LoveLanguage).
		SetCreatedAt(e.CreatedAt).
		Build()
}

func (p Profile) ToEntity() Entity {
	return Entity{
		ID:           p.id,
		DatingIntent: p.datingIntent.String(),
		Gesture:      p.gesture,
		Passion:      p.passion,
		ThreeWords:   p.threeWords,
		LoveLanguage: p.loveLanguage.String(),
		CreatedAt:    p.createdAt,
	}
}
