package repository

import (
	"gorm.io/gorm"

	"calassist/cmd/internal/domain/entity"
)

// DefaultConflictLogRepository is the append-only audit sink. Records are
// never updated or deleted.
type DefaultConflictLogRepository struct {
	db *gorm.DB
}

func NewConflictLogRepository(db *gorm.DB) *DefaultConflictLogRepository {
	return &DefaultConflictLogRepository{db: db}
}

func (r *DefaultConflictLogRepository) Append(entry *entity.ConflictDetectionLog) error {
	return r.db.Create(entry).Error
}
