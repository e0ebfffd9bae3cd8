package repository

import (
	"errors"

	"gorm.io/gorm"

	"calassist/cmd/internal/domain/entity"
)

type DefaultPreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *DefaultPreferenceRepository {
	return &DefaultPreferenceRepository{db: db}
}

func (r *DefaultPreferenceRepository) FindByUserID(userID int64) (*entity.UserPreference, error) {
	var pref entity.UserPreference
	err := r.db.Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *DefaultPreferenceRepository) Save(pref *entity.UserPreference) error {
	return r.db.Save(pref).Error
}
