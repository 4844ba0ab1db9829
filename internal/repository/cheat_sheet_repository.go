package repository

import (
	"examprep_backend/internal/model"

	"gorm.io/gorm"
)

type CheatSheetRepository struct {
	DB *gorm.DB
}

func NewCheatSheetRepository(db *gorm.DB) *CheatSheetRepository {
	return &CheatSheetRepository{DB: db}
}

func (r *CheatSheetRepository) FindByUser(userID uint, topicID uint) ([]model.CheatSheetEntry, error) {
	var entries []model.CheatSheetEntry
	q := r.DB.Where("user_id = ?", userID)
	if topicID != 0 {
		q = q.Where("topic_id = ?", topicID)
	}
	err := q.Order("order_index asc").Find(&entries).Error
	return entries, err
}

func (r *CheatSheetRepository) Create(entry *model.CheatSheetEntry) error {
	return r.DB.Create(entry).Error
}

// Delete 仅删除属于该用户的条目，返回是否命中
func (r *CheatSheetRepository) Delete(id, userID uint) (bool, error) {
	result := r.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&model.CheatSheetEntry{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
