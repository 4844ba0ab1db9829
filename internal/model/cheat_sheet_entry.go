package model

// CheatSheetEntry 用户自选公式速查条目，按 userId 独占
// swagger:model CheatSheetEntry
type CheatSheetEntry struct {
	BaseModel
	UserID     uint   `gorm:"index;not null" json:"userId"`
	TopicID    uint   `gorm:"index;not null" json:"topicId"`
	Formula    string `gorm:"type:text;not null" json:"formula"`
	Label      string `gorm:"size:255;not null" json:"label"`
	OrderIndex int    `gorm:"default:0" json:"orderIndex"`
}

func (CheatSheetEntry) TableName() string {
	return "cheat_sheet_entries"
}
