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

// StudentService 学生业务接口
type StudentService interface {
	List(ctx context.Context, status string) ([]dto.StudentResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.StudentResponse, error)
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	Update(ctx context.Context, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	Deactivate(ctx context.Context, id int64) error
	Activate(ctx context.Context, id int64) error
	Search(ctx context.Context, req *dto.SearchRequest) ([]dto.StudentResponse, error)
}

type studentService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{cfg: cfg, repo: repo, logger: logger}
}

func (s *studentService) List(ctx context.Context, status string) ([]dto.StudentResponse, error) {
	filter, err := listStatus(status)
	if err != nil {
		return nil, err
	}
	students, err := s.repo.Student.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询学生列表失败", zap.Error(err))
		return nil, err
	}
	return toStudentResponses(students), nil
}

func (s *studentService) GetByID(ctx context.Context, id int64) (*dto.StudentResponse, error) {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toStudentResponse(student)
	return &resp, nil
}

func (s *studentService) Search(ctx context.Context, req *dto.SearchRequest) ([]dto.StudentResponse, error) {
	filter, err := buildSearchFilter(searchInput{req.Name, req.StartDate, req.EndDate})
	if err != nil {
		return nil, err
	}
	students, err := s.repo.Student.Search(ctx, filter)
	if err != nil {
		s.logger.Error("搜索学生失败", zap.Error(err))
		return nil, err
	}
	return toStudentResponses(students), nil
}

// ────────────────────── Create ──────────────────────

// Create 同一事务内创建登录账号与学生档案
func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	name, err := requireText(req.Name, "Nome")
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	registration, err := requireText(req.Registration, "Matrícula")
	if err != nil {
		return nil, err
	}

	if taken, err := usernameTaken(ctx, s.repo, email, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrStudentEmailExists
	}
	if taken, err := s.registrationTaken(ctx, registration, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrRegistrationExists
	}

	user, err := newAccount(email, model.AuthorityStudent, name, s.cfg.Auth.DefaultPassword)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}
	student := &model.Student{
		Name:         name,
		Registration: registration,
		Observation:  optionalText(req.Observation),
		Image:        optionalText(req.Image),
		Telephone:    optionalText(req.Telephone),
		Status:       model.StudentStatusStudying,
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.User.Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrStudentEmailExists
			}
			return err
		}
		student.UserID = &user.ID
		if err := tx.Student.Create(ctx, student); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrRegistrationExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrStudentEmailExists) || errors.Is(err, ErrRegistrationExists) {
			return nil, err
		}
		s.logger.Error("创建学生失败", zap.Error(err))
		return nil, err
	}

	student.User = user
	s.logger.Info("学生已创建", zap.Int64("id", student.ID), zap.Int64("user_id", user.ID))

	resp := toStudentResponse(student)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	student, err := s.getStudent(ctx, req.ID)
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
		student.Name = name
		changed = true
	}
	if req.Email != nil {
		email, err := normalizeEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		if student.User != nil && student.User.Username != email {
			if taken, err := usernameTaken(ctx, s.repo, email, student.User.ID); err != nil {
				return nil, err
			} else if taken {
				return nil, ErrStudentEmailExists
			}
			student.User.Username = email
			userChanged = true
		}
		changed = true
	}
	if req.Registration != nil {
		registration, err := requireText(*req.Registration, "Matrícula")
		if err != nil {
			return nil, err
		}
		if registration != student.Registration {
			if taken, err := s.registrationTaken(ctx, registration, student.ID); err != nil {
				return nil, err
			} else if taken {
				return nil, ErrRegistrationExists
			}
			student.Registration = registration
		}
		changed = true
	}
	if req.Observation != nil {
		student.Observation = optionalText(req.Observation)
		changed = true
	}
	if req.Image != nil {
		student.Image = optionalText(req.Image)
		changed = true
	}
	if req.Telephone != nil {
		student.Telephone = optionalText(req.Telephone)
		changed = true
	}

	if !changed {
		return nil, ErrNoChanges
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if userChanged {
			if err := tx.User.Update(ctx, student.User); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrStudentEmailExists
				}
				return err
			}
		}
		if err := tx.Student.Update(ctx, student); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrRegistrationExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrStudentEmailExists) || errors.Is(err, ErrRegistrationExists) {
			return nil, err
		}
		s.logger.Error("更新学生失败", zap.Int64("id", req.ID), zap.Error(err))
		return nil, err
	}

	resp := toStudentResponse(student)
	return &resp, nil
}

// ────────────────────── 逻辑删除 / 恢复 ──────────────────────

// Deactivate 停用学生的登录账号
func (s *studentService) Deactivate(ctx context.Context, id int64) error {
	return s.setStatus(ctx, id, model.StatusInactive)
}

// Activate 恢复学生的登录账号，已启用时视为成功
func (s *studentService) Activate(ctx context.Context, id int64) error {
	return s.setStatus(ctx, id, model.StatusActive)
}

// ── 内部辅助方法 ──

func (s *studentService) setStatus(ctx context.Context, id int64, status string) error {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return err
	}
	if err := setAccountStatus(ctx, s.repo, student.User, status); err != nil {
		s.logger.Error("更新学生账号状态失败", zap.Int64("id", id), zap.String("status", status), zap.Error(err))
		return err
	}
	return nil
}

func (s *studentService) registrationTaken(ctx context.Context, registration string, excludeID int64) (bool, error) {
	st, err := s.repo.Student.GetByRegistration(ctx, registration)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return st.ID != excludeID, nil
}

func (s *studentService) getStudent(ctx context.Context, id int64) (*model.Student, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return student, nil
}

func toStudentResponses(students []model.Student) []dto.StudentResponse {
	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, toStudentResponse(&students[i]))
	}
	return result
}
