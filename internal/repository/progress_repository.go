package repository

import (
	"examprep_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindLearnByTopic(userID, topicID uint) ([]model.UserLearnProgress, error) {
	var rows []model.UserLearnProgress
	err := r.DB.Where("user_id = ? AND topic_id = ?", userID, topicID).Find(&rows).Error
	return rows, err
}

// MarkCardComplete (user, card) 幂等置为完成
func (r *ProgressRepository) MarkCardComplete(userID, cardID, topicID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.UserLearnProgress
		err := tx.Where("user_id = ? AND learn_card_id = ?", userID, cardID).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			return tx.Create(&model.UserLearnProgress{
				UserID:      userID,
				LearnCardID: cardID,
				TopicID:     topicID,
				Completed:   true,
			}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&existing).Update("completed", true).Error
	})
}

func (r *ProgressRepository) FindPracticeByTopic(userID, topicID uint) ([]model.UserPracticeProgress, error) {
	var rows []model.UserPracticeProgress
	err := r.DB.Where("user_id = ? AND topic_id = ?", userID, topicID).Find(&rows).Error
	return rows, err
}

// mergePracticeResult 已有记录与本次结果合并：
// attempts 递增，correct 一旦为真保持为真
func mergePracticeResult(existing *model.UserPracticeProgress, correct bool) (bool, int) {
	return correct || existing.Correct, existing.Attempts + 1
}

// RecordPracticeResult (user, template) 行 upsert
func (r *ProgressRepository) RecordPracticeResult(userID, templateID, topicID uint, correct bool) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.UserPracticeProgress
		err := tx.Where("user_id = ? AND question_template_id = ?", userID, templateID).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			return tx.Create(&model.UserPracticeProgress{
				UserID:             userID,
				QuestionTemplateID: templateID,
				TopicID:            topicID,
				Correct:            correct,
				Attempts:           1,
			}).Error
		}
		if err != nil {
			return err
		}
		mergedCorrect, attempts := mergePracticeResult(&existing, correct)
		return tx.Model(&existing).Updates(map[string]interface{}{
			"correct":  mergedCorrect,
			"attempts": attempts,
		}).Error
	})
}
