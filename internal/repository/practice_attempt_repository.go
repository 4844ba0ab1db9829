package repository

import (
	"examprep_backend/internal/model"

	"gorm.io/gorm"
)

type PracticeAttemptRepository struct {
	DB *gorm.DB
}

func NewPracticeAttemptRepository(db *gorm.DB) *PracticeAttemptRepository {
	return &PracticeAttemptRepository{DB: db}
}

// Create 写入一条不可变的练习台账记录，ID 由 UUIDBase 生成
func (r *PracticeAttemptRepository) Create(attempt *model.PracticeAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *PracticeAttemptRepository) FindByID(id string) (*model.PracticeAttempt, error) {
	var attempt model.PracticeAttempt
	err := r.DB.Where("id = ?", id).First(&attempt).Error
	return &attempt, err
}
