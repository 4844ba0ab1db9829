package model

import "time"

// InviteCode 注册邀请码，一次性使用
type InviteCode struct {
	BaseModel
	Code   string     `gorm:"size:32;uniqueIndex;not null" json:"code"`
	Used   bool       `gorm:"default:false" json:"used"`
	UsedBy *uint      `gorm:"index" json:"usedBy,omitempty"`
	UsedAt *time.Time `json:"usedAt,omitempty"`
}

func (InviteCode) TableName() string {
	return "invite_codes"
}
