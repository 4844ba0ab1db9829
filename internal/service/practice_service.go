package service

import (
	"context"
	"math/rand"
	"strconv"
	"strings"

	"examprep_backend/internal/model"
	"examprep_backend/internal/repository"
	"examprep_backend/internal/util"
	"examprep_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// 判题模式
const (
	GradeModeNormal = ""       // 正常判题
	GradeModeView   = "view"   // 只看解析，不记进度
	GradeModeMaster = "master" // 标记已掌握
)

// numericTolerance 数值题允许的误差
const numericTolerance = 0.01

// AttemptStore 练习台账的读写，测试中可用内存实现替换
type AttemptStore interface {
	Create(attempt *model.PracticeAttempt) error
	FindByID(id string) (*model.PracticeAttempt, error)
}

// MasteryStore 掌握度记录的写入
type MasteryStore interface {
	RecordPracticeResult(userID, templateID, topicID uint, correct bool) error
}

type PracticeService struct {
	TemplateRepo *repository.QuestionTemplateRepository
	AttemptRepo  AttemptStore
	ProgressRepo MasteryStore
	TopicRepo    *repository.TopicRepository
	Redis        *redis.Client
}

func NewPracticeService(
	templateRepo *repository.QuestionTemplateRepository,
	attemptRepo AttemptStore,
	progressRepo MasteryStore,
	topicRepo *repository.TopicRepository,
	rdb *redis.Client,
) *PracticeService {
	return &PracticeService{
		TemplateRepo: templateRepo,
		AttemptRepo:  attemptRepo,
		ProgressRepo: progressRepo,
		TopicRepo:    topicRepo,
		Redis:        rdb,
	}
}

// PracticeQuestion 下发给学生的题目，不含答案与解析
type PracticeQuestion struct {
	AttemptID    string           `json:"attemptId"`
	TemplateID   uint             `json:"templateId"`
	QuestionText string           `json:"questionText"`
	AnswerType   model.AnswerType `json:"answerType"`
}

// GradeResult 判题结果，此时才把答案与解析回传
type GradeResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	SolutionSteps string `json:"solutionSteps"`
}

// GenerateQuestion 出题：templateID 非零时固定使用该模板（"再来一道类似的"），
// 否则在主题下随机挑一个模板。每次出题写入一条台账记录
func (s *PracticeService) GenerateQuestion(ctx context.Context, userID, topicID, templateID uint) (*PracticeQuestion, error) {
	if _, err := s.TopicRepo.FindByID(topicID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}

	var tpl *model.QuestionTemplate
	if templateID != 0 {
		found, err := s.TemplateRepo.FindByID(templateID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, util.ErrTemplateNotFound
			}
			return nil, err
		}
		if found.TopicID != topicID {
			return nil, util.ErrTemplateNotFound
		}
		tpl = found
	} else {
		templates, err := s.TemplateRepo.FindByTopic(topicID)
		if err != nil {
			return nil, err
		}
		if len(templates) == 0 {
			return nil, util.ErrNoTemplates
		}
		tpl = &templates[rand.Intn(len(templates))]
	}

	generated, err := Generate(tpl)
	if err != nil {
		return nil, err
	}

	attempt := &model.PracticeAttempt{
		UserID:        userID,
		TemplateID:    tpl.ID,
		TopicID:       topicID,
		QuestionText:  generated.QuestionText,
		CorrectAnswer: generated.CorrectAnswer,
		SolutionSteps: generated.SolutionSteps,
		AnswerType:    tpl.AnswerType,
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}

	monitoring.QuestionsGenerated.WithLabelValues(string(tpl.Kind)).Inc()

	return &PracticeQuestion{
		AttemptID:    attempt.ID,
		TemplateID:   tpl.ID,
		QuestionText: generated.QuestionText,
		AnswerType:   tpl.AnswerType,
	}, nil
}

// GradeAnswer 按模式处理一次提交：
//   - view：只返回答案解析，不动进度
//   - master：按答对记录
//   - 默认：比对答案并记录
//
// 台账记录不属于当前用户时一律 403
func (s *PracticeService) GradeAnswer(ctx context.Context, userID uint, attemptID, submitted, mode string) (*GradeResult, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	result := &GradeResult{
		CorrectAnswer: attempt.CorrectAnswer,
		SolutionSteps: attempt.SolutionSteps,
	}

	switch mode {
	case GradeModeView:
		return result, nil
	case GradeModeMaster:
		result.Correct = true
	default:
		result.Correct = answersMatch(submitted, attempt.CorrectAnswer, attempt.AnswerType)
	}

	if err := s.ProgressRepo.RecordPracticeResult(userID, attempt.TemplateID, attempt.TopicID, result.Correct); err != nil {
		return nil, err
	}
	invalidateOverviewCache(ctx, s.Redis, userID)

	label := "incorrect"
	if result.Correct {
		label = "correct"
	}
	monitoring.AnswersGraded.WithLabelValues(label).Inc()

	return result, nil
}

// answersMatch 归一化后精确比对，数值题退回浮点容差比较
func answersMatch(submitted, correct string, answerType model.AnswerType) bool {
	sub := strings.ToLower(strings.TrimSpace(submitted))
	want := strings.ToLower(strings.TrimSpace(correct))
	if sub == want {
		return true
	}
	if answerType != model.AnswerNumeric {
		return false
	}

	subNum, err1 := strconv.ParseFloat(sub, 64)
	wantNum, err2 := strconv.ParseFloat(want, 64)
	if err1 != nil || err2 != nil {
		return false
	}
	diff := subNum - wantNum
	if diff < 0 {
		diff = -diff
	}
	return diff < numericTolerance
}
