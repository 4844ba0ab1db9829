package repository

import (
	"examprep_backend/internal/model"

	"gorm.io/gorm"
)

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

func (r *TopicRepository) FindAll() ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Order("order_index asc").Find(&topics).Error
	return topics, err
}

func (r *TopicRepository) FindByCourse(courseID uint) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Where("course_id = ?", courseID).Order("order_index asc").Find(&topics).Error
	return topics, err
}

func (r *TopicRepository) FindByID(id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.First(&topic, id).Error
	return &topic, err
}

func (r *TopicRepository) Create(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

func (r *TopicRepository) Update(topic *model.Topic) error {
	return r.DB.Save(topic).Error
}

// Delete 级联删除主题下的卡片、模板、练习记录和进度行
func (r *TopicRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("topic_id = ?", id).Delete(&model.LearnCard{}).Error; err != nil {
			return err
		}
		if err := tx.Where("topic_id = ?", id).Delete(&model.QuestionTemplate{}).Error; err != nil {
			return err
		}
		if err := tx.Where("topic_id = ?", id).Delete(&model.UserLearnProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("topic_id = ?", id).Delete(&model.UserPracticeProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("topic_id = ?", id).Delete(&model.PracticeAttempt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("topic_id = ?", id).Delete(&model.CheatSheetEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Topic{}, id).Error
	})
}
