package repository

import (
	"examprep_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Order("order_index asc").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	// 课程删除时仅解除主题关联，主题本身保留
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Topic{}).Where("course_id = ?", id).Update("course_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, id).Error
	})
}
