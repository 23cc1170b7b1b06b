package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/model"
	"github.com/chrono2k/gradmateAPI/internal/repository"
	apperrors "github.com/chrono2k/gradmateAPI/pkg/errors"
	"github.com/chrono2k/gradmateAPI/pkg/imageutil"
	"github.com/chrono2k/gradmateAPI/pkg/storage"
)

// SignatureURLPrefix 签名对外访问路径前缀
const SignatureURLPrefix = "/course/signature/"

// CourseService 课程业务接口
type CourseService interface {
	List(ctx context.Context, status string) ([]dto.CourseResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.CourseResponse, error)
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	Update(ctx context.Context, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	Deactivate(ctx context.Context, id int64) error
	Activate(ctx context.Context, id int64) error
	Search(ctx context.Context, req *dto.SearchRequest) ([]dto.CourseResponse, error)
	Statistics(ctx context.Context) (*dto.CourseStatistics, error)
	OpenSignature(ctx context.Context, filename string) (*dto.FileDownload, error)
}

type courseService struct {
	repo       *repository.Repository
	signatures storage.Store
	logger     *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, signatures storage.Store, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, signatures: signatures, logger: logger}
}

// ────────────────────── 查询 ──────────────────────

func (s *courseService) List(ctx context.Context, status string) ([]dto.CourseResponse, error) {
	filter, err := listStatus(status)
	if err != nil {
		return nil, err
	}
	courses, err := s.repo.Course.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.Error(err))
		return nil, err
	}
	return toCourseResponses(courses), nil
}

func (s *courseService) GetByID(ctx context.Context, id int64) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toCourseResponse(course)
	return &resp, nil
}

func (s *courseService) Search(ctx context.Context, req *dto.SearchRequest) ([]dto.CourseResponse, error) {
	filter, err := buildSearchFilter(searchInput{req.Name, req.StartDate, req.EndDate})
	if err != nil {
		return nil, err
	}
	courses, err := s.repo.Course.Search(ctx, filter)
	if err != nil {
		s.logger.Error("搜索课程失败", zap.Error(err))
		return nil, err
	}
	return toCourseResponses(courses), nil
}

func (s *courseService) Statistics(ctx context.Context) (*dto.CourseStatistics, error) {
	stats, err := s.repo.Course.Statistics(ctx)
	if err != nil {
		s.logger.Error("课程统计失败", zap.Error(err))
		return nil, err
	}
	return &dto.CourseStatistics{
		Total:         stats.Total,
		Active:        stats.Active,
		Inactive:      stats.Inactive,
		LastCreatedAt: dto.FormatTimePtr(stats.LastCreatedAt),
	}, nil
}

// ────────────────────── Create ──────────────────────

// Create 课程与签名在同一事务内落库：插入 → 保存签名 → 回写 URL → 提交
func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	name, err := requireText(req.Name, "Nome do curso")
	if err != nil {
		return nil, err
	}

	sig, err := validateSignature(req.Signature)
	if err != nil {
		return nil, err
	}

	if exists, err := s.repo.Course.ExistsActiveName(ctx, name, 0); err != nil {
		s.logger.Error("检查课程名称失败", zap.Error(err))
		return nil, err
	} else if exists {
		return nil, ErrCourseNameExists
	}

	course := &model.Course{
		Name:                   name,
		Observation:            optionalText(req.Observation),
		Status:                 model.StatusActive,
		ResponsibleTeacherName: optionalText(req.ResponsibleTeacherName),
	}

	var savedKey string
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Course.Create(ctx, course); err != nil {
			return err
		}
		if sig == nil {
			return nil
		}
		key, err := s.saveSignature(ctx, course.ID, sig)
		if err != nil {
			return err
		}
		savedKey = key
		url := SignatureURLPrefix + key
		course.ResponsibleSignatureURL = &url
		return tx.Course.Update(ctx, course)
	})
	if err != nil {
		s.discardSignature(ctx, savedKey)
		return nil, s.mapWriteError("创建课程失败", err)
	}

	resp := toCourseResponse(course)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	changed := false
	nameChanged := false

	if req.Name != nil {
		name, err := requireText(*req.Name, "Nome do curso")
		if err != nil {
			return nil, err
		}
		nameChanged = !strings.EqualFold(name, course.Name)
		course.Name = name
		changed = true
	}
	if req.Observation != nil {
		course.Observation = optionalText(req.Observation)
		changed = true
	}
	if req.ResponsibleTeacherName != nil {
		course.ResponsibleTeacherName = optionalText(req.ResponsibleTeacherName)
		changed = true
	}
	reactivated := false
	if req.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*req.Status))
		if !model.ValidActiveStatus(status) {
			return nil, ErrInvalidStatus
		}
		reactivated = status == model.StatusActive && course.Status != model.StatusActive
		course.Status = status
		changed = true
	}

	sig, err := validateSignature(req.Signature)
	if err != nil {
		return nil, err
	}
	if sig != nil {
		changed = true
	}

	if !changed {
		return nil, ErrNoChanges
	}

	if course.Status == model.StatusActive && (nameChanged || reactivated) {
		if exists, err := s.repo.Course.ExistsActiveName(ctx, course.Name, course.ID); err != nil {
			return nil, err
		} else if exists {
			return nil, ErrCourseNameExists
		}
	}

	oldKey := signatureKey(course.ResponsibleSignatureURL)
	var savedKey string
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if sig != nil {
			key, err := s.saveSignature(ctx, course.ID, sig)
			if err != nil {
				return err
			}
			savedKey = key
			url := SignatureURLPrefix + key
			course.ResponsibleSignatureURL = &url
		}
		return tx.Course.Update(ctx, course)
	})
	if err != nil {
		s.discardSignature(ctx, savedKey)
		return nil, s.mapWriteError("更新课程失败", err)
	}

	if savedKey != "" && oldKey != "" && oldKey != savedKey {
		s.discardSignature(ctx, oldKey)
	}

	resp := toCourseResponse(course)
	return &resp, nil
}

// ────────────────────── 逻辑删除 / 恢复 ──────────────────────

// Deactivate 已停用时视为成功
func (s *courseService) Deactivate(ctx context.Context, id int64) error {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return err
	}
	if course.Status == model.StatusInactive {
		return nil
	}
	course.Status = model.StatusInactive
	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("停用课程失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// Activate 已启用时视为成功；同名活跃课程存在时冲突
func (s *courseService) Activate(ctx context.Context, id int64) error {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return err
	}
	if course.Status == model.StatusActive {
		return nil
	}

	if exists, err := s.repo.Course.ExistsActiveName(ctx, course.Name, course.ID); err != nil {
		return err
	} else if exists {
		return ErrCourseNameExists
	}

	course.Status = model.StatusActive
	if err := s.repo.Course.Update(ctx, course); err != nil {
		return s.mapWriteError("启用课程失败", err)
	}
	return nil
}

// ────────────────────── 签名下载 ──────────────────────

func (s *courseService) OpenSignature(ctx context.Context, filename string) (*dto.FileDownload, error) {
	if !storage.SafeName(filename) {
		return nil, ErrSignatureNotFound
	}
	rc, err := s.signatures.Open(ctx, filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrSignatureNotFound
		}
		s.logger.Error("读取签名失败", zap.String("file", filename), zap.Error(err))
		return nil, err
	}

	contentType := "image/png"
	if ext := imageutil.NormalizeExt(filename); ext == "jpg" || ext == "jpeg" {
		contentType = "image/jpeg"
	}
	return &dto.FileDownload{Filename: filename, ContentType: contentType, Content: rc}, nil
}

// ── 内部辅助方法 ──

func (s *courseService) getCourse(ctx context.Context, id int64) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return course, nil
}

// saveSignature 写入签名文件，失败统一映射为 ErrSignatureSave
func (s *courseService) saveSignature(ctx context.Context, courseID int64, sig *imageutil.Signature) (string, error) {
	key := signatureFileName(courseID, sig.Ext)
	if err := s.signatures.Save(ctx, key, bytes.NewReader(sig.Data), int64(len(sig.Data)), sig.ContentType); err != nil {
		s.logger.Error("保存签名失败", zap.Int64("course_id", courseID), zap.Error(err))
		return "", ErrSignatureSave
	}
	return key, nil
}

// discardSignature 尽力删除签名文件，失败仅记录告警
func (s *courseService) discardSignature(ctx context.Context, key string) {
	if key == "" {
		return
	}
	discardBlob(ctx, s.signatures, s.logger, key)
}

func (s *courseService) mapWriteError(msg string, err error) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrCourseNameExists
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}

// validateSignature 未上传返回 (nil, nil)
func validateSignature(up *dto.Upload) (*imageutil.Signature, error) {
	if up == nil {
		return nil, nil
	}
	sig, err := imageutil.ValidateSignature(up.Content, up.Filename)
	if err != nil {
		return nil, apperrors.Validation(ErrInvalidSignature.Code, err.Error())
	}
	return sig, nil
}

// signatureFileName course_{id}_signature_{unix}_{hex8}.{ext}
func signatureFileName(courseID int64, ext string) string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return fmt.Sprintf("course_%d_signature_%d_%s.%s", courseID, time.Now().Unix(), hex.EncodeToString(b), ext)
}

// signatureKey 从对外 URL 还原存储 key
func signatureKey(url *string) string {
	if url == nil {
		return ""
	}
	return strings.TrimPrefix(*url, SignatureURLPrefix)
}

func toCourseResponses(courses []model.Course) []dto.CourseResponse {
	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, toCourseResponse(&courses[i]))
	}
	return result
}
