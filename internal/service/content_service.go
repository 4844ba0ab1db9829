package service

import (
	"errors"

	"examprep_backend/internal/model"
	"examprep_backend/internal/repository"
	"examprep_backend/internal/util"

	"gorm.io/gorm"
)

// ContentService 课程/主题/卡片/模板的读取与后台维护
type ContentService struct {
	CourseRepo   *repository.CourseRepository
	TopicRepo    *repository.TopicRepository
	CardRepo     *repository.LearnCardRepository
	TemplateRepo *repository.QuestionTemplateRepository
}

func NewContentService(
	courseRepo *repository.CourseRepository,
	topicRepo *repository.TopicRepository,
	cardRepo *repository.LearnCardRepository,
	templateRepo *repository.QuestionTemplateRepository,
) *ContentService {
	return &ContentService{
		CourseRepo:   courseRepo,
		TopicRepo:    topicRepo,
		CardRepo:     cardRepo,
		TemplateRepo: templateRepo,
	}
}

// CourseSummary 课程列表项，附主题数量
type CourseSummary struct {
	model.Course
	TopicCount int `json:"topicCount"`
}

func (s *ContentService) ListCourses() ([]CourseSummary, error) {
	courses, err := s.CourseRepo.FindAll()
	if err != nil {
		return nil, err
	}

	summaries := make([]CourseSummary, 0, len(courses))
	for _, course := range courses {
		topics, err := s.TopicRepo.FindByCourse(course.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, CourseSummary{Course: course, TopicCount: len(topics)})
	}
	return summaries, nil
}

func (s *ContentService) TopicsForCourse(courseID uint) ([]model.Topic, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return s.TopicRepo.FindByCourse(courseID)
}

func (s *ContentService) AllTopics() ([]model.Topic, error) {
	return s.TopicRepo.FindAll()
}

func (s *ContentService) GetTopic(id uint) (*model.Topic, error) {
	topic, err := s.TopicRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}
	return topic, nil
}

// ---- 后台维护 ----

func (s *ContentService) CreateCourse(course *model.Course) error {
	return s.CourseRepo.Create(course)
}

func (s *ContentService) UpdateCourse(id uint, input *model.Course) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	course.Name = input.Name
	course.Description = input.Description
	course.Icon = input.Icon
	course.OrderIndex = input.OrderIndex
	course.Locked = input.Locked
	return course, s.CourseRepo.Update(course)
}

func (s *ContentService) DeleteCourse(id uint) error {
	if _, err := s.CourseRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	return s.CourseRepo.Delete(id)
}

func (s *ContentService) CreateTopic(topic *model.Topic) error {
	if topic.CourseID != nil {
		if _, err := s.CourseRepo.FindByID(*topic.CourseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrCourseNotFound
			}
			return err
		}
	}
	return s.TopicRepo.Create(topic)
}

func (s *ContentService) UpdateTopic(id uint, input *model.Topic) (*model.Topic, error) {
	topic, err := s.GetTopic(id)
	if err != nil {
		return nil, err
	}
	topic.CourseID = input.CourseID
	topic.Name = input.Name
	topic.Description = input.Description
	topic.Icon = input.Icon
	topic.OrderIndex = input.OrderIndex
	return topic, s.TopicRepo.Update(topic)
}

func (s *ContentService) DeleteTopic(id uint) error {
	if _, err := s.GetTopic(id); err != nil {
		return err
	}
	return s.TopicRepo.Delete(id)
}

func (s *ContentService) CreateCard(card *model.LearnCard) error {
	if _, err := s.GetTopic(card.TopicID); err != nil {
		return err
	}
	return s.CardRepo.Create(card)
}

func (s *ContentService) UpdateCard(id uint, input *model.LearnCard) (*model.LearnCard, error) {
	card, err := s.CardRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCardNotFound
		}
		return nil, err
	}
	card.TopicID = input.TopicID
	card.Title = input.Title
	card.Content = input.Content
	card.Formula = input.Formula
	card.QuickCheck = input.QuickCheck
	card.QuickCheckAnswer = input.QuickCheckAnswer
	card.OrderIndex = input.OrderIndex
	return card, s.CardRepo.Update(card)
}

func (s *ContentService) DeleteCard(id uint) error {
	if _, err := s.CardRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCardNotFound
		}
		return err
	}
	return s.CardRepo.Delete(id)
}

// CreateTemplate 保存前先验证模板能解出答案，挡掉写错 kind 或漏参的模板
func (s *ContentService) CreateTemplate(template *model.QuestionTemplate) error {
	if _, err := s.GetTopic(template.TopicID); err != nil {
		return err
	}
	if err := ValidateTemplate(template); err != nil {
		return err
	}
	return s.TemplateRepo.Create(template)
}

func (s *ContentService) UpdateTemplate(id uint, input *model.QuestionTemplate) (*model.QuestionTemplate, error) {
	template, err := s.TemplateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTemplateNotFound
		}
		return nil, err
	}
	template.TopicID = input.TopicID
	template.Kind = input.Kind
	template.TemplateText = input.TemplateText
	template.SolutionTemplate = input.SolutionTemplate
	template.AnswerType = input.AnswerType
	template.Parameters = input.Parameters
	if err := ValidateTemplate(template); err != nil {
		return nil, err
	}
	return template, s.TemplateRepo.Update(template)
}

func (s *ContentService) DeleteTemplate(id uint) error {
	if _, err := s.TemplateRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTemplateNotFound
		}
		return err
	}
	return s.TemplateRepo.Delete(id)
}

func (s *ContentService) TemplatesForTopic(topicID uint) ([]model.QuestionTemplate, error) {
	if _, err := s.GetTopic(topicID); err != nil {
		return nil, err
	}
	return s.TemplateRepo.FindByTopic(topicID)
}
