package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chrono2k/gradmateAPI/config"
	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/model"
	"github.com/chrono2k/gradmateAPI/internal/repository"
	"github.com/chrono2k/gradmateAPI/pkg/jwt"
)

// AdminUsername 启动时保证存在的管理员账号
const AdminUsername = "admin"

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	CurrentUser(ctx context.Context, who dto.Identity) (*dto.CurrentUserResponse, error)
	EnsureAdmin(ctx context.Context) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		logger: logger,
	}
}

// ────────────────────── Login ──────────────────────

// Login 账号不存在、密码错误、账号停用统一返回 ErrInvalidCredentials
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.User.GetByUsername(ctx, normalizeUsername(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	if !verifyPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive() {
		s.logger.Info("停用账号尝试登录", zap.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtMgr.GenerateToken(user.ID, user.Username, user.Authority)
	if err != nil {
		s.logger.Error("生成 Token 失败", zap.Error(err))
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

// ────────────────────── CurrentUser ──────────────────────

func (s *authService) CurrentUser(ctx context.Context, who dto.Identity) (*dto.CurrentUserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, who.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Int64("id", who.UserID), zap.Error(err))
		return nil, err
	}

	resp := &dto.CurrentUserResponse{UserResponse: toUserResponse(user)}

	switch user.Authority {
	case model.AuthorityTeacher:
		if t, err := s.repo.Teacher.GetByUserID(ctx, user.ID); err == nil {
			resp.TeacherID = &t.ID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	case model.AuthorityStudent:
		if st, err := s.repo.Student.GetByUserID(ctx, user.ID); err == nil {
			resp.StudentID = &st.ID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return resp, nil
}

// ────────────────────── EnsureAdmin ──────────────────────

// EnsureAdmin 不存在 admin 账号时以默认密码创建
func (s *authService) EnsureAdmin(ctx context.Context) error {
	_, err := s.repo.User.GetByUsername(ctx, AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := hashPassword(s.cfg.Auth.DefaultPassword)
	if err != nil {
		return err
	}

	admin := &model.User{
		Username:     AdminUsername,
		Authority:    model.AuthorityAdmin,
		PasswordHash: hash,
		Status:       model.StatusActive,
	}
	if err := s.repo.User.Create(ctx, admin); err != nil {
		s.logger.Error("创建管理员账号失败", zap.Error(err))
		return err
	}

	s.logger.Warn("已创建默认管理员账号，请尽快修改密码", zap.Int64("id", admin.ID))
	return nil
}
