package profile

import (
	"errors"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile_id not found")

func GetByIdProvider(db *gorm.DB, log logrus.FieldLogger) func(profileId uint32) model.Provider[Profile] {
	return func(profileId uint32) model.Provider[Profile] {
		return func() (Profile, error) {
			log.WithField("profileId", profileId).Debug("Retrieving profile by ID")

			var entity Entity
			err := db.Where("profile_id = ?", profileId).First(&entity).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return Profile{}, ErrProfileNotFound
				}
				return Profile{}, err
			}
			return Make(entity)
		}
	}
}

// GetAllProvider retrieves every profile ordered by id
func GetAllProvider(db *gorm.DB, log logrus.FieldLogger) model.Provider[[]Profile] {
	return func() ([]Profile, error) {
		var entities []Entity
		if err := db.Order("profile_id ASC").Find(&entities).Error; err != nil {
			return nil, err
		}

		profiles := make([]Profile, 0, len(entities))
		for _, e := range entities {
			p, err := Make(e)
			if err != nil {
				log.WithError(err).WithField("profileId", e.ID).Warn("Skipping profile that fails validation.")
				continue
			}
			profiles = append(profiles, p)
		}
		return profiles, nil
	}
}

func CountProvider(db *gorm.DB) model.Provider[int64] {
	return func() (int64, error) {
		var count int64
		err := db.Model(&Entity{}).Count(&count).Error
		return count, err
	}
}
