package model

// Course 课程，locked 的课程对学生可见但不可进入（仅前端门禁）
// swagger:model Course
type Course struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:64" json:"icon"`
	OrderIndex  int    `gorm:"default:0" json:"orderIndex"`
	Locked      bool   `gorm:"default:false" json:"locked"`
}

func (Course) TableName() string {
	return "courses"
}
