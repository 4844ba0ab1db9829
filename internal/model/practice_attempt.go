package model

// PracticeAttempt 练习台账：一次出题的完整快照。
// 创建后不可变，判分/看答案都从这里读，避免重算
type PracticeAttempt struct {
	UUIDBase
	UserID        uint       `gorm:"index;not null" json:"userId"`
	TemplateID    uint       `gorm:"index;not null" json:"templateId"`
	TopicID       uint       `gorm:"index;not null" json:"topicId"`
	QuestionText  string     `gorm:"type:text;not null" json:"questionText"`
	CorrectAnswer string     `gorm:"type:text;not null" json:"-"`
	SolutionSteps string     `gorm:"type:text;not null" json:"-"`
	AnswerType    AnswerType `gorm:"size:16;default:'numeric'" json:"answerType"`
}

func (PracticeAttempt) TableName() string {
	return "practice_attempts"
}
