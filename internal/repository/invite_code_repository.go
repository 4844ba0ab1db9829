package repository

import (
	"examprep_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type InviteCodeRepository struct {
	DB *gorm.DB
}

func NewInviteCodeRepository(db *gorm.DB) *InviteCodeRepository {
	return &InviteCodeRepository{DB: db}
}

func (r *InviteCodeRepository) FindUnused(code string) (*model.InviteCode, error) {
	var invite model.InviteCode
	err := r.DB.Where("code = ? AND used = ?", code, false).First(&invite).Error
	return &invite, err
}

// Consume 在事务内标记邀请码已使用，防止并发注册重复消费
func (r *InviteCodeRepository) Consume(tx *gorm.DB, code string, userID uint) error {
	now := time.Now()
	result := tx.Model(&model.InviteCode{}).
		Where("code = ? AND used = ?", code, false).
		Updates(map[string]interface{}{"used": true, "used_by": userID, "used_at": now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *InviteCodeRepository) Create(invite *model.InviteCode) error {
	return r.DB.Create(invite).Error
}

func (r *InviteCodeRepository) List() ([]model.InviteCode, error) {
	var codes []model.InviteCode
	err := r.DB.Order("id asc").Find(&codes).Error
	return codes, err
}
