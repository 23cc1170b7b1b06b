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
)

// TeacherService 教师业务接口
type TeacherService interface {
	List(ctx context.Context, status string) ([]dto.TeacherResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.TeacherResponse, error)
	Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error)
	Update(ctx context.Context, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error)
	Deactivate(ctx context.Context, id int64) error
	Activate(ctx context.Context, id int64) error
	Search(ctx context.Context, req *dto.SearchRequest) ([]dto.TeacherResponse, error)
}

type teacherService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeacherService 创建 TeacherService 实例
func NewTeacherService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) TeacherService {
	return &teacherService{cfg: cfg, repo: repo, logger: logger}
}

func (s *teacherService) List(ctx context.Context, status string) ([]dto.TeacherResponse, error) {
	filter, err := listStatus(status)
	if err != nil {
		return nil, err
	}
	teachers, err := s.repo.Teacher.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询教师列表失败", zap.Error(err))
		return nil, err
	}
	return toTeacherResponses(teachers), nil
}

func (s *teacherService) GetByID(ctx context.Context, id int64) (*dto.TeacherResponse, error) {
	teacher, err := s.getTeacher(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toTeacherResponse(teacher)
	return &resp, nil
}

func (s *teacherService) Search(ctx context.Context, req *dto.SearchRequest) ([]dto.TeacherResponse, error) {
	filter, err := buildSearchFilter(searchInput{req.Name, req.StartDate, req.EndDate})
	if err != nil {
		return nil, err
	}
	teachers, err := s.repo.Teacher.Search(ctx, filter)
	if err != nil {
		s.logger.Error("搜索教师失败", zap.Error(err))
		return nil, err
	}
	return toTeacherResponses(teachers), nil
}

// ────────────────────── Create ──────────────────────

// Create 同一事务内创建登录账号与教师档案
func (s *teacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	name, err := requireText(req.Name, "Nome")
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	if taken, err := usernameTaken(ctx, s.repo, email, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrTeacherEmailExists
	}

	user, err := newAccount(email, model.AuthorityTeacher, name, s.cfg.Auth.DefaultPassword)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}
	teacher := &model.Teacher{
		Name:        name,
		Observation: optionalText(req.Observation),
		Image:       optionalText(req.Image),
		Telephone:   optionalText(req.Telephone),
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.User.Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrTeacherEmailExists
			}
			return err
		}
		teacher.UserID = &user.ID
		return tx.Teacher.Create(ctx, teacher)
	})
	if err != nil {
		if errors.Is(err, ErrTeacherEmailExists) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTeacherEmailExists
		}
		s.logger.Error("创建教师失败", zap.Error(err))
		return nil, err
	}

	teacher.User = user
	s.logger.Info("教师已创建", zap.Int64("id", teacher.ID), zap.Int64("user_id", user.ID))

	resp := toTeacherResponse(teacher)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *teacherService) Update(ctx context.Context, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error) {
	teacher, err := s.getTeacher(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	changed := false
	userChanged := false

	if req.Name != nil {
		name, err := requireText(*req.Name, "Nome")
		if err != nil {
			return nil, err
		}
		teacher.Name = name
		changed = true
	}
	if req.Email != nil {
		email, err := normalizeEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		if teacher.User != nil && teacher.User.Username != email {
			if taken, err := usernameTaken(ctx, s.repo, email, teacher.User.ID); err != nil {
				return nil, err
			} else if taken {
				return nil, ErrTeacherEmailExists
			}
			teacher.User.Username = email
			userChanged = true
		}
		changed = true
	}
	if req.Observation != nil {
		teacher.Observation = optionalText(req.Observation)
		changed = true
	}
	if req.Image != nil {
		teacher.Image = optionalText(req.Image)
		changed = true
	}
	if req.Telephone != nil {
		teacher.Telephone = optionalText(req.Telephone)
		changed = true
	}

	if !changed {
		return nil, ErrNoChanges
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if userChanged {
			if err := tx.User.Update(ctx, teacher.User); err != nil {
				return err
			}
		}
		return tx.Teacher.Update(ctx, teacher)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTeacherEmailExists
		}
		s.logger.Error("更新教师失败", zap.Int64("id", req.ID), zap.Error(err))
		return nil, err
	}

	resp := toTeacherResponse(teacher)
	return &resp, nil
}

// ────────────────────── 逻辑删除 / 恢复 ──────────────────────

// Deactivate 停用教师的登录账号
func (s *teacherService) Deactivate(ctx context.Context, id int64) error {
	return s.setStatus(ctx, id, model.StatusInactive)
}

// Activate 恢复教师的登录账号，已启用时视为成功
func (s *teacherService) Activate(ctx context.Context, id int64) error {
	return s.setStatus(ctx, id, model.StatusActive)
}

// ── 内部辅助方法 ──

func (s *teacherService) setStatus(ctx context.Context, id int64, status string) error {
	teacher, err := s.getTeacher(ctx, id)
	if err != nil {
		return err
	}
	if err := setAccountStatus(ctx, s.repo, teacher.User, status); err != nil {
		s.logger.Error("更新教师账号状态失败", zap.Int64("id", id), zap.String("status", status), zap.Error(err))
		return err
	}
	return nil
}

func (s *teacherService) getTeacher(ctx context.Context, id int64) (*model.Teacher, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return teacher, nil
}

func toTeacherResponses(teachers []model.Teacher) []dto.TeacherResponse {
	result := make([]dto.TeacherResponse, 0, len(teachers))
	for i := range teachers {
		result = append(result, toTeacherResponse(&teachers[i]))
	}
	return result
}
