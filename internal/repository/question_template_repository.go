package repository

import (
	"examprep_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionTemplateRepository struct {
	DB *gorm.DB
}

func NewQuestionTemplateRepository(db *gorm.DB) *QuestionTemplateRepository {
	return &QuestionTemplateRepository{DB: db}
}

func (r *QuestionTemplateRepository) FindByTopic(topicID uint) ([]model.QuestionTemplate, error) {
	var templates []model.QuestionTemplate
	err := r.DB.Where("topic_id = ?", topicID).Find(&templates).Error
	return templates, err
}

func (r *QuestionTemplateRepository) FindByID(id uint) (*model.QuestionTemplate, error) {
	var template model.QuestionTemplate
	err := r.DB.First(&template, id).Error
	return &template, err
}

func (r *QuestionTemplateRepository) CountByTopic(topicID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuestionTemplate{}).Where("topic_id = ?", topicID).Count(&count).Error
	return count, err
}

func (r *QuestionTemplateRepository) Create(template *model.QuestionTemplate) error {
	return r.DB.Create(template).Error
}

func (r *QuestionTemplateRepository) Update(template *model.QuestionTemplate) error {
	return r.DB.Save(template).Error
}

func (r *QuestionTemplateRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_template_id = ?", id).Delete(&model.UserPracticeProgress{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.QuestionTemplate{}, id).Error
	})
}
