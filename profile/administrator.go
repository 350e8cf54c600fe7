package profile

import (
	"time"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateProfile inserts a validated profile. The stored id and creation time are returned on the entity.
func CreateProfile(db *gorm.DB, log logrus.FieldLogger) func(profile Profile) model.Provider[Entity] {
	return func(profile Profile) model.Provider[Entity] {
		return func() (Entity, error) {
			entity := profile.ToEntity()
			entity.ID = 0
			entity.CreatedAt = time.Now().UTC()

			if err := db.Create(&entity).Error; err != nil {
				log.WithError(err).Error("Unable to insert profile.")
				return Entity{}, err
			}
			log.WithField("profileId", entity.ID).Debug("Inserted profile.")
			return entity, nil
		}
	}
}
