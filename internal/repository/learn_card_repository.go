package repository

import (
	"examprep_backend/internal/model"

	"gorm.io/gorm"
)

type LearnCardRepository struct {
	DB *gorm.DB
}

func NewLearnCardRepository(db *gorm.DB) *LearnCardRepository {
	return &LearnCardRepository{DB: db}
}

func (r *LearnCardRepository) FindByTopic(topicID uint) ([]model.LearnCard, error) {
	var cards []model.LearnCard
	err := r.DB.Where("topic_id = ?", topicID).Order("order_index asc").Find(&cards).Error
	return cards, err
}

func (r *LearnCardRepository) FindByID(id uint) (*model.LearnCard, error) {
	var card model.LearnCard
	err := r.DB.First(&card, id).Error
	return &card, err
}

func (r *LearnCardRepository) CountByTopic(topicID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LearnCard{}).Where("topic_id = ?", topicID).Count(&count).Error
	return count, err
}

// FindPresetFormulas 取有高亮公式的卡片，作为速查表的预设条目
func (r *LearnCardRepository) FindPresetFormulas(topicID uint) ([]model.LearnCard, error) {
	var cards []model.LearnCard
	q := r.DB.Where("formula <> ''")
	if topicID != 0 {
		q = q.Where("topic_id = ?", topicID)
	}
	err := q.Order("topic_id asc, order_index asc").Find(&cards).Error
	return cards, err
}

func (r *LearnCardRepository) Create(card *model.LearnCard) error {
	return r.DB.Create(card).Error
}

func (r *LearnCardRepository) Update(card *model.LearnCard) error {
	return r.DB.Save(card).Error
}

func (r *LearnCardRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("learn_card_id = ?", id).Delete(&model.UserLearnProgress{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.LearnCard{}, id).Error
	})
}
