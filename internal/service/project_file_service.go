package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chrono2k/gradmateAPI/config"
	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/model"
	"github.com/chrono2k/gradmateAPI/internal/repository"
	apperrors "github.com/chrono2k/gradmateAPI/pkg/errors"
	"github.com/chrono2k/gradmateAPI/pkg/storage"
)

// ProjectFileService 项目附件业务接口
type ProjectFileService interface {
	Upload(ctx context.Context, who dto.Identity, projectID int64, files []dto.Upload) ([]dto.ProjectFileResponse, error)
	List(ctx context.Context, who dto.Identity, projectID int64) ([]dto.ProjectFileResponse, error)
	Download(ctx context.Context, who dto.Identity, projectID, fileID int64) (*dto.FileDownload, error)
	Delete(ctx context.Context, who dto.Identity, projectID, fileID int64) error
	BulkDelete(ctx context.Context, who dto.Identity, projectID int64, fileIDs []int64) (*dto.BulkDeleteResult, error)
}

type projectFileService struct {
	repo     *repository.Repository
	files    storage.Store
	maxBytes int64
	logger   *zap.Logger
}

// NewProjectFileService 创建 ProjectFileService 实例
func NewProjectFileService(cfg *config.Config, repo *repository.Repository, files storage.Store, logger *zap.Logger) ProjectFileService {
	return &projectFileService{
		repo:     repo,
		files:    files,
		maxBytes: cfg.Storage.MaxUploadMB << 20,
		logger:   logger,
	}
}

// ────────────────────── Upload ──────────────────────

// Upload 先写入全部文件内容，再在一个事务内写入元数据；失败时清理已写入的内容
func (s *projectFileService) Upload(ctx context.Context, who dto.Identity, projectID int64, files []dto.Upload) ([]dto.ProjectFileResponse, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if _, err := loadProject(ctx, s.repo, who, projectID, accessView); err != nil {
		return nil, err
	}
	for i := range files {
		if s.maxBytes > 0 && int64(len(files[i].Content)) > s.maxBytes {
			return nil, ErrFileTooLarge
		}
	}

	rows := make([]*model.ProjectFile, 0, len(files))
	var keys []string
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		for i := range files {
			row, key, err := storeProjectFile(ctx, tx, s.files, projectID, who.UserID, &files[i])
			if key != "" {
				keys = append(keys, key)
			}
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		for _, key := range keys {
			discardBlob(ctx, s.files, s.logger, key)
		}
		s.logger.Error("上传附件失败", zap.Int64("project_id", projectID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ProjectFileResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, toFileResponse(row))
	}
	return result, nil
}

// ────────────────────── 查询 / 下载 ──────────────────────

func (s *projectFileService) List(ctx context.Context, who dto.Identity, projectID int64) ([]dto.ProjectFileResponse, error) {
	if _, err := loadProject(ctx, s.repo, who, projectID, accessView); err != nil {
		return nil, err
	}
	files, err := s.repo.ProjectFile.ListByProject(ctx, projectID)
	if err != nil {
		s.logger.Error("查询附件列表失败", zap.Int64("project_id", projectID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.ProjectFileResponse, 0, len(files))
	for i := range files {
		result = append(result, toFileResponse(&files[i]))
	}
	return result, nil
}

func (s *projectFileService) Download(ctx context.Context, who dto.Identity, projectID, fileID int64) (*dto.FileDownload, error) {
	if _, err := loadProject(ctx, s.repo, who, projectID, accessView); err != nil {
		return nil, err
	}
	file, err := s.getFile(ctx, projectID, fileID)
	if err != nil {
		return nil, err
	}

	rc, err := s.files.Open(ctx, fileKey(projectID, file.StoredName))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("附件元数据存在但内容缺失", zap.Int64("file_id", fileID))
			return nil, ErrFileNotFound
		}
		s.logger.Error("读取附件失败", zap.Int64("file_id", fileID), zap.Error(err))
		return nil, err
	}

	contentType := "application/octet-stream"
	if file.MimeType != nil {
		contentType = *file.MimeType
	}
	return &dto.FileDownload{
		Filename:    file.OriginalName,
		ContentType: contentType,
		Size:        file.Size,
		Content:     rc,
	}, nil
}

// ────────────────────── Delete ──────────────────────

// Delete 先删除元数据，内容删除失败只记录告警
func (s *projectFileService) Delete(ctx context.Context, who dto.Identity, projectID, fileID int64) error {
	if _, err := loadProject(ctx, s.repo, who, projectID, accessManage); err != nil {
		return err
	}
	file, err := s.getFile(ctx, projectID, fileID)
	if err != nil {
		return err
	}
	return s.remove(ctx, file)
}

// BulkDelete 逐项独立处理，非法 id、不属于该项目或删除失败的记入 failed
func (s *projectFileService) BulkDelete(ctx context.Context, who dto.Identity, projectID int64, fileIDs []int64) (*dto.BulkDeleteResult, error) {
	if len(fileIDs) == 0 {
		return nil, ErrEmptyFileIDList
	}
	if _, err := loadProject(ctx, s.repo, who, projectID, accessManage); err != nil {
		return nil, err
	}

	result := &dto.BulkDeleteResult{
		Deleted: make([]int64, 0, len(fileIDs)),
		Failed:  make([]int64, 0),
	}
	fail := func(id int64, err error) {
		if result.Errors == nil {
			result.Errors = make(map[int64]string)
		}
		result.Failed = append(result.Failed, id)
		result.Errors[id] = failureReason(err)
	}

	seen := make(map[int64]struct{}, len(fileIDs))
	for _, id := range fileIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if id <= 0 {
			fail(id, ErrInvalidFileID)
			continue
		}
		file, err := s.getFile(ctx, projectID, id)
		if err != nil {
			fail(id, err)
			continue
		}
		if err := s.remove(ctx, file); err != nil {
			fail(id, err)
			continue
		}
		result.Deleted = append(result.Deleted, id)
	}

	s.logger.Info("批量删除附件",
		zap.Int64("project_id", projectID),
		zap.Int("deleted", len(result.Deleted)),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

// ── 内部辅助方法 ──

func (s *projectFileService) remove(ctx context.Context, file *model.ProjectFile) error {
	if err := s.repo.ProjectFile.Delete(ctx, file.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFileNotFound
		}
		s.logger.Error("删除附件元数据失败", zap.Int64("file_id", file.ID), zap.Error(err))
		return err
	}
	discardBlob(ctx, s.files, s.logger, fileKey(file.ProjectID, file.StoredName))
	return nil
}

// getFile 附件不属于该项目时返回 ErrFileNotInProject
func (s *projectFileService) getFile(ctx context.Context, projectID, fileID int64) (*model.ProjectFile, error) {
	file, err := s.repo.ProjectFile.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	if file.ProjectID != projectID {
		return nil, ErrFileNotInProject
	}
	return file, nil
}

// failureReason 业务错误使用其提示，其余统一为通用提示
func failureReason(err error) string {
	if appErr, ok := apperrors.As(err); ok {
		return appErr.Message
	}
	return "Falha ao remover arquivo"
}

// ── 附件存取（答辩纪要复用）──

var extPattern = regexp.MustCompile(`^[a-z0-9]{1,10}$`)

// sanitizeExt 仅保留 1~10 位字母数字扩展名，否则为空
func sanitizeExt(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !extPattern.MatchString(ext) {
		return ""
	}
	return ext
}

func fileKey(projectID int64, storedName string) string {
	return fmt.Sprintf("%d/%s", projectID, storedName)
}

// storeProjectFile 写入内容并插入元数据；返回的 key 非空表示内容已写入
func storeProjectFile(
	ctx context.Context,
	repo *repository.Repository,
	store storage.Store,
	projectID, uploaderID int64,
	up *dto.Upload,
) (*model.ProjectFile, string, error) {
	storedName := uuid.NewString()
	if ext := sanitizeExt(up.Filename); ext != "" {
		storedName += "." + ext
	}
	mime := mimetype.Detect(up.Content).String()
	size := int64(len(up.Content))

	key := fileKey(projectID, storedName)
	if err := store.Save(ctx, key, bytes.NewReader(up.Content), size, mime); err != nil {
		return nil, "", fmt.Errorf("保存附件内容失败: %w", err)
	}

	originalName := filepath.Base(strings.TrimSpace(up.Filename))
	if originalName == "." || originalName == "/" || originalName == "" {
		originalName = storedName
	}
	row := &model.ProjectFile{
		ProjectID:    projectID,
		OriginalName: originalName,
		StoredName:   storedName,
		MimeType:     &mime,
		Size:         &size,
	}
	if uploaderID > 0 {
		row.UploadedBy = &uploaderID
	}
	if err := repo.ProjectFile.Create(ctx, row); err != nil {
		return nil, key, err
	}
	return row, key, nil
}

// discardBlob 尽力删除内容，失败只记录告警
func discardBlob(ctx context.Context, store storage.Store, logger *zap.Logger, key string) {
	if err := store.Delete(ctx, key); err != nil {
		logger.Warn("删除附件内容失败", zap.String("key", key), zap.Error(err))
	}
}
