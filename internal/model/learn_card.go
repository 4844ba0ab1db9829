package model

// LearnCard 学习卡片（markdown + LaTeX），按 OrderIndex 在主题内排序
// swagger:model LearnCard
type LearnCard struct {
	BaseModel
	TopicID          uint   `gorm:"index;not null" json:"topicId"`
	Title            string `gorm:"size:255;not null" json:"title"`
	Content          string `gorm:"type:text;not null" json:"content"`
	Formula          string `gorm:"type:text" json:"formula"`          // 高亮公式，可作为公式速查表预设
	QuickCheck       string `gorm:"type:text" json:"quickCheck"`       // 卡片内自测题
	QuickCheckAnswer string `gorm:"type:text" json:"quickCheckAnswer"` // 自测题答案
	OrderIndex       int    `gorm:"default:0" json:"orderIndex"`
}

func (LearnCard) TableName() string {
	return "learn_cards"
}
