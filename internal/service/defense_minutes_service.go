package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chrono2k/gradmateAPI/config"
	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/model"
	"github.com/chrono2k/gradmateAPI/internal/repository"
	"github.com/chrono2k/gradmateAPI/pkg/storage"
)

// startedAtLayouts started_at 可接受的格式
var startedAtLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04"}

// DefenseMinutesService 答辩纪要（ata）业务接口
type DefenseMinutesService interface {
	Create(ctx context.Context, who dto.Identity, projectID int64, req *dto.CreateDefenseMinutesRequest) (*dto.DefenseMinutesResponse, error)
	List(ctx context.Context, who dto.Identity, projectID int64) ([]dto.DefenseMinutesResponse, error)
	ListAll(ctx context.Context, who dto.Identity) ([]dto.DefenseMinutesResponse, error)
	Delete(ctx context.Context, who dto.Identity, projectID, ataID int64) error
}

type defenseMinutesService struct {
	repo     *repository.Repository
	files    storage.Store
	maxBytes int64
	logger   *zap.Logger
}

// NewDefenseMinutesService 创建 DefenseMinutesService 实例
func NewDefenseMinutesService(cfg *config.Config, repo *repository.Repository, files storage.Store, logger *zap.Logger) DefenseMinutesService {
	return &defenseMinutesService{
		repo:     repo,
		files:    files,
		maxBytes: cfg.Storage.MaxUploadMB << 20,
		logger:   logger,
	}
}

// ────────────────────── Create ──────────────────────

// Create 附带文件时在同一事务内登记为项目附件；file_id 必须属于同一项目
func (s *defenseMinutesService) Create(ctx context.Context, who dto.Identity, projectID int64, req *dto.CreateDefenseMinutesRequest) (*dto.DefenseMinutesResponse, error) {
	if _, err := loadProject(ctx, s.repo, who, projectID, accessManage); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	result := strings.ToLower(strings.TrimSpace(req.Result))
	if !model.ValidDefenseResult(result) {
		return nil, ErrInvalidDefenseResult
	}

	minutes := &model.DefenseMinutes{
		ProjectID:   projectID,
		Title:       title,
		Result:      result,
		StudentName: optionalText(req.StudentName),
		Location:    optionalText(req.Location),
	}
	if who.UserID > 0 {
		minutes.CreatedBy = &who.UserID
	}
	if v := optionalText(req.StartedAt); v != nil {
		t, err := parseStartedAt(*v)
		if err != nil {
			return nil, err
		}
		minutes.StartedAt = &t
	}

	switch {
	case req.File != nil:
		if s.maxBytes > 0 && int64(len(req.File.Content)) > s.maxBytes {
			return nil, ErrFileTooLarge
		}
	case req.FileID != nil:
		file, err := s.repo.ProjectFile.GetByID(ctx, *req.FileID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrFileNotFound
			}
			return nil, err
		}
		if file.ProjectID != projectID {
			return nil, ErrFileNotInProject
		}
		minutes.FileID = &file.ID
		minutes.File = file
	}

	var savedKey string
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if req.File != nil {
			file, key, err := storeProjectFile(ctx, tx, s.files, projectID, who.UserID, req.File)
			savedKey = key
			if err != nil {
				return err
			}
			minutes.FileID = &file.ID
			minutes.File = file
		}
		return tx.DefenseMinutes.Create(ctx, minutes)
	})
	if err != nil {
		if savedKey != "" {
			discardBlob(ctx, s.files, s.logger, savedKey)
		}
		s.logger.Error("创建答辩纪要失败", zap.Int64("project_id", projectID), zap.Error(err))
		return nil, err
	}

	resp := toDefenseMinutesResponse(minutes)
	return &resp, nil
}

// ────────────────────── 查询 ──────────────────────

func (s *defenseMinutesService) List(ctx context.Context, who dto.Identity, projectID int64) ([]dto.DefenseMinutesResponse, error) {
	if _, err := loadProject(ctx, s.repo, who, projectID, accessView); err != nil {
		return nil, err
	}
	list, err := s.repo.DefenseMinutes.ListByProject(ctx, projectID)
	if err != nil {
		s.logger.Error("查询答辩纪要失败", zap.Int64("project_id", projectID), zap.Error(err))
		return nil, err
	}
	return toDefenseMinutesResponses(list), nil
}

// ListAll 调用方可见的所有项目的答辩纪要
func (s *defenseMinutesService) ListAll(ctx context.Context, who dto.Identity) ([]dto.DefenseMinutesResponse, error) {
	list, err := s.repo.DefenseMinutes.ListVisible(ctx, viewerFilter(who))
	if err != nil {
		s.logger.Error("查询答辩纪要失败", zap.Error(err))
		return nil, err
	}
	return toDefenseMinutesResponses(list), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 只删除纪要本身，关联附件保留在项目中
func (s *defenseMinutesService) Delete(ctx context.Context, who dto.Identity, projectID, ataID int64) error {
	if _, err := loadProject(ctx, s.repo, who, projectID, accessManage); err != nil {
		return err
	}
	minutes, err := s.repo.DefenseMinutes.GetByID(ctx, ataID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDefenseMinutesNotFound
		}
		return err
	}
	if minutes.ProjectID != projectID {
		return ErrDefenseMinutesNotFound
	}
	if err := s.repo.DefenseMinutes.Delete(ctx, ataID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDefenseMinutesNotFound
		}
		s.logger.Error("删除答辩纪要失败", zap.Int64("id", ataID), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func parseStartedAt(v string) (time.Time, error) {
	for _, layout := range startedAtLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidStartedAt
}

func toDefenseMinutesResponses(list []model.DefenseMinutes) []dto.DefenseMinutesResponse {
	result := make([]dto.DefenseMinutesResponse, 0, len(list))
	for i := range list {
		result = append(result, toDefenseMinutesResponse(&list[i]))
	}
	return result
}
