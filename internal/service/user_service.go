package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chrono2k/gradmateAPI/config"
	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/model"
	"github.com/chrono2k/gradmateAPI/internal/repository"
)

// UserService 账号管理业务接口（仅管理员）
type UserService interface {
	List(ctx context.Context) ([]dto.UserResponse, error)
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	UpdateAuthority(ctx context.Context, who dto.Identity, id int64, authority string) error
	UpdateStatus(ctx context.Context, who dto.Identity, id int64, status string) error
	ResetPassword(ctx context.Context, id int64, password *string) error
}

type userService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{cfg: cfg, repo: repo, logger: logger}
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	username, err := requireText(req.Username, "Usuário")
	if err != nil {
		return nil, err
	}
	username = normalizeUsername(username)
	if !model.ValidAuthority(req.Authority) {
		return nil, ErrInvalidAuthority
	}

	if taken, err := usernameTaken(ctx, s.repo, username, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		if !errors.Is(err, ErrPasswordTooLong) {
			s.logger.Error("密码哈希失败", zap.Error(err))
		}
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Authority:    req.Authority,
		PasswordHash: hash,
		Status:       model.StatusActive,
		Name:         optionalText(req.Name),
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameExists
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── UpdateAuthority / UpdateStatus ──────────────────────

func (s *userService) UpdateAuthority(ctx context.Context, who dto.Identity, id int64, authority string) error {
	if !model.ValidAuthority(authority) {
		return ErrInvalidAuthority
	}
	if who.UserID == id {
		return ErrSelfModification
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return err
	}
	if user.Authority == authority {
		return nil
	}

	user.Authority = authority
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户权限失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// UpdateStatus 目标状态与当前一致时视为成功
func (s *userService) UpdateStatus(ctx context.Context, who dto.Identity, id int64, status string) error {
	status = strings.ToLower(strings.TrimSpace(status))
	if !model.ValidActiveStatus(status) {
		return ErrInvalidStatus
	}
	if who.UserID == id {
		return ErrSelfModification
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return err
	}
	if user.Status == status {
		return nil
	}

	if err := s.repo.User.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error("更新用户状态失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ResetPassword ──────────────────────

// ResetPassword 未提供新密码时恢复为默认密码
func (s *userService) ResetPassword(ctx context.Context, id int64, password *string) error {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return err
	}

	plain := s.cfg.Auth.DefaultPassword
	if password != nil && strings.TrimSpace(*password) != "" {
		plain = *password
	}

	hash, err := hashPassword(plain)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("重置密码失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *userService) getUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}
