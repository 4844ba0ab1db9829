package model

// Topic 主题，最多属于一个课程
// swagger:model Topic
type Topic struct {
	BaseModel
	CourseID    *uint  `gorm:"index" json:"courseId,omitempty"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:64" json:"icon"`
	OrderIndex  int    `gorm:"default:0" json:"orderIndex"`
}

func (Topic) TableName() string {
	return "topics"
}
