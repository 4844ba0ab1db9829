package service

import (
	"context"
	"testing"

	"examprep_backend/internal/model"
	"examprep_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestAnswersMatch(t *testing.T) {
	cases := []struct {
		name       string
		submitted  string
		correct    string
		answerType model.AnswerType
		want       bool
	}{
		{"完全一致", "12", "12", model.AnswerNumeric, true},
		{"大小写与空白归一化", "  SIN(X)^2  ", "sin(x)^2", model.AnswerText, true},
		{"数值在容差内", "8.005", "8.00", model.AnswerNumeric, true},
		{"数值超出容差", "8.02", "8.00", model.AnswerNumeric, false},
		{"整数与小数等值", "5", "5.0", model.AnswerNumeric, true},
		{"负数容差", "-3.141", "-3.14", model.AnswerNumeric, true},
		{"文本不匹配", "cos(x)", "sin(x)", model.AnswerText, false},
		{"非数值不走浮点比较", "five", "5", model.AnswerNumeric, false},
		{"文本题不做浮点容差", "5.001", "5", model.AnswerText, false},
		{"空提交对非空答案", "", "7", model.AnswerNumeric, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, answersMatch(tc.submitted, tc.correct, tc.answerType))
		})
	}
}

// memAttemptStore 内存版台账，按 ID 查找
type memAttemptStore struct {
	attempts map[string]*model.PracticeAttempt
}

func (s *memAttemptStore) Create(attempt *model.PracticeAttempt) error {
	s.attempts[attempt.ID] = attempt
	return nil
}

func (s *memAttemptStore) FindByID(id string) (*model.PracticeAttempt, error) {
	attempt, ok := s.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return attempt, nil
}

type masteryCall struct {
	userID     uint
	templateID uint
	topicID    uint
	correct    bool
}

// recordingMasteryStore 记录每次掌握度写入，便于断言副作用
type recordingMasteryStore struct {
	calls []masteryCall
}

func (s *recordingMasteryStore) RecordPracticeResult(userID, templateID, topicID uint, correct bool) error {
	s.calls = append(s.calls, masteryCall{userID, templateID, topicID, correct})
	return nil
}

func newGradingService(attempts ...*model.PracticeAttempt) (*PracticeService, *recordingMasteryStore) {
	store := &memAttemptStore{attempts: make(map[string]*model.PracticeAttempt)}
	for _, a := range attempts {
		store.attempts[a.ID] = a
	}
	recorder := &recordingMasteryStore{}
	return &PracticeService{AttemptRepo: store, ProgressRepo: recorder}, recorder
}

func ownedAttempt() *model.PracticeAttempt {
	a := &model.PracticeAttempt{
		UserID:        1,
		TemplateID:    7,
		TopicID:       3,
		QuestionText:  "计算 |(3, 4)|",
		CorrectAnswer: "5",
		SolutionSteps: "sqrt(3^2 + 4^2) = 5",
		AnswerType:    model.AnswerNumeric,
	}
	a.ID = "attempt-1"
	return a
}

func TestGradeAnswerViewModeKeepsProgressUntouched(t *testing.T) {
	svc, recorder := newGradingService(ownedAttempt())

	result, err := svc.GradeAnswer(context.Background(), 1, "attempt-1", "", GradeModeView)

	assert.NoError(t, err)
	assert.Equal(t, "5", result.CorrectAnswer)
	assert.Equal(t, "sqrt(3^2 + 4^2) = 5", result.SolutionSteps)
	assert.False(t, result.Correct)
	assert.Empty(t, recorder.calls, "只看解析不应写掌握度")
}

func TestGradeAnswerRejectsForeignAttempt(t *testing.T) {
	svc, recorder := newGradingService(ownedAttempt())

	result, err := svc.GradeAnswer(context.Background(), 2, "attempt-1", "5", GradeModeNormal)

	assert.ErrorIs(t, err, util.ErrPermissionDenied)
	assert.Nil(t, result, "他人台账不得泄露答案")
	assert.Empty(t, recorder.calls)
}

func TestGradeAnswerUnknownAttempt(t *testing.T) {
	svc, _ := newGradingService()

	_, err := svc.GradeAnswer(context.Background(), 1, "missing", "5", GradeModeNormal)

	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}

func TestGradeAnswerRecordsResult(t *testing.T) {
	cases := []struct {
		name        string
		submitted   string
		mode        string
		wantCorrect bool
	}{
		{"答对计入", "5", GradeModeNormal, true},
		{"答错计入", "4", GradeModeNormal, false},
		{"标记掌握强制算对", "nonsense", GradeModeMaster, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, recorder := newGradingService(ownedAttempt())

			result, err := svc.GradeAnswer(context.Background(), 1, "attempt-1", tc.submitted, tc.mode)

			assert.NoError(t, err)
			assert.Equal(t, tc.wantCorrect, result.Correct)
			if assert.Len(t, recorder.calls, 1) {
				call := recorder.calls[0]
				assert.Equal(t, uint(1), call.userID)
				assert.Equal(t, uint(7), call.templateID)
				assert.Equal(t, uint(3), call.topicID)
				assert.Equal(t, tc.wantCorrect, call.correct)
			}
		})
	}
}
