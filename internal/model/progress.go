package model

// UserLearnProgress 学习卡片完成记录，(user, card) 至多一行
type UserLearnProgress struct {
	BaseModel
	UserID      uint `gorm:"index:idx_learn_user_card,unique;not null" json:"userId"`
	LearnCardID uint `gorm:"index:idx_learn_user_card,unique;not null" json:"learnCardId"`
	TopicID     uint `gorm:"index;not null" json:"topicId"`
	Completed   bool `gorm:"default:false" json:"completed"`
}

func (UserLearnProgress) TableName() string {
	return "user_learn_progress"
}

// UserPracticeProgress 模板掌握度记录。
// Correct 单调：一旦判对就保持为 true；Attempts 每次判分递增
type UserPracticeProgress struct {
	BaseModel
	UserID             uint `gorm:"index:idx_practice_user_tpl,unique;not null" json:"userId"`
	QuestionTemplateID uint `gorm:"index:idx_practice_user_tpl,unique;not null" json:"questionTemplateId"`
	TopicID            uint `gorm:"index;not null" json:"topicId"`
	Correct            bool `gorm:"default:false" json:"correct"`
	Attempts           int  `gorm:"default:0" json:"attempts"`
}

func (UserPracticeProgress) TableName() string {
	return "user_practice_progress"
}
