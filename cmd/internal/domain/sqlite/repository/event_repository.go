package repository

import (
	"errors"

	"gorm.io/gorm"

	"calassist/cmd/internal/domain/entity"
)

type DefaultEventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *DefaultEventRepository {
	return &DefaultEventRepository{db: db}
}

func (r *DefaultEventRepository) FindByID(id int64) (*entity.CalendarEvent, error) {
	var ev entity.CalendarEvent
	err := r.db.First(&ev, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *DefaultEventRepository) FindByUserID(userID int64) ([]*entity.CalendarEvent, error) {
	var events []*entity.CalendarEvent
	err := r.db.
		Where("user_id = ?", userID).
		Order("starts_at asc").
		Find(&events).Error
	return events, err
}

// EventsBetween returns the user's non-cancelled events starting inside
// [dayStart, dayEnd), ordered by start time. This is the read model the
// conflict engine works on.
func (r *DefaultEventRepository) EventsBetween(userID, dayStart, dayEnd int64) ([]*entity.CalendarEvent, error) {
	var events []*entity.CalendarEvent
	err := r.db.
		Where("user_id = ?", userID).
		Where("status <> ?", entity.StatusCancelled).
		Where("starts_at >= ?", dayStart).
		Where("starts_at < ?", dayEnd).
		Order("starts_at asc").
		Find(&events).Error
	return events, err
}

func (r *DefaultEventRepository) Save(ev *entity.CalendarEvent) error {
	return r.db.Save(ev).Error
}
