package service

import (
	"errors"
	"strings"

	"examprep_backend/internal/model"
	"examprep_backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo   *repository.UserRepository
	InviteRepo *repository.InviteCodeRepository
}

func NewUserService(userRepo *repository.UserRepository, inviteRepo *repository.InviteCodeRepository) *UserService {
	return &UserService{
		UserRepo:   userRepo,
		InviteRepo: inviteRepo,
	}
}

func (s *UserService) Profile(userID uint) (*model.User, error) {
	return s.UserRepo.FindByID(userID)
}

type UserPage struct {
	Users []model.User `json:"users"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

func (s *UserService) List(page, limit int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	users, total, err := s.UserRepo.List(page, limit)
	if err != nil {
		return nil, err
	}
	return &UserPage{Users: users, Total: total, Page: page, Limit: limit}, nil
}

type UpdateUserRequest struct {
	DisplayName string         `json:"displayName"`
	Role        model.UserRole `json:"role"`
}

func (s *UserService) UpdateUser(id uint, req *UpdateUserRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	if req.DisplayName != "" {
		user.DisplayName = req.DisplayName
	}
	if req.Role == model.Student || req.Role == model.Admin {
		user.Role = req.Role
	}
	return user, s.UserRepo.Update(user)
}

func (s *UserService) SetDisabled(id uint, disabled bool) error {
	if _, err := s.UserRepo.FindByID(id); err != nil {
		return err
	}
	return s.UserRepo.SetDisabled(id, disabled)
}

func (s *UserService) ListInviteCodes() ([]model.InviteCode, error) {
	return s.InviteRepo.List()
}

// GenerateInviteCodes 批量生成随机邀请码
func (s *UserService) GenerateInviteCodes(count int) ([]model.InviteCode, error) {
	if count < 1 {
		count = 1
	}
	if count > 50 {
		count = 50
	}
	codes := make([]model.InviteCode, 0, count)
	for i := 0; i < count; i++ {
		invite := model.InviteCode{
			Code: strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:10]),
		}
		if err := s.InviteRepo.Create(&invite); err != nil {
			return nil, err
		}
		codes = append(codes, invite)
	}
	return codes, nil
}
