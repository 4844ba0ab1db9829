package service

import (
	"errors"

	"examprep_backend/internal/config"
	"examprep_backend/internal/model"
	"examprep_backend/internal/repository"
	"examprep_backend/internal/util"
	"examprep_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo   *repository.UserRepository
	InviteRepo *repository.InviteCodeRepository
	Cfg        *config.Config
	DB         *gorm.DB
}

func NewAuthService(userRepo *repository.UserRepository, inviteRepo *repository.InviteCodeRepository, cfg *config.Config, db *gorm.DB) *AuthService {
	return &AuthService{
		UserRepo:   userRepo,
		InviteRepo: inviteRepo,
		Cfg:        cfg,
		DB:         db,
	}
}

type RegisterRequest struct {
	DisplayName string `json:"displayName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	InviteCode  string `json:"inviteCode" binding:"required"`
}

// Register 建用户并消费邀请码，两步在同一事务内完成，
// 保证邀请码只能被一次注册用掉
func (s *AuthService) Register(req *RegisterRequest) (*model.User, error) {
	_, err := s.UserRepo.FindByEmail(req.Email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.InviteRepo.FindUnused(req.InviteCode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInviteCodeInvalid
		}
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Password:    string(hashed),
		Role:        model.Student,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if err := s.InviteRepo.Consume(tx, req.InviteCode, user.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrInviteCodeInvalid
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("新用户注册", zap.Uint("userID", user.ID), zap.String("email", user.Email))
	return user, nil
}

// Login 校验密码并签发 JWT，被禁用的账号不允许登录
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}
	if user.Disabled {
		return "", nil, util.ErrPermissionDenied
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("更新最近登录时间失败", zap.Uint("userID", user.ID), zap.Error(err))
	}
	return token, user, nil
}
