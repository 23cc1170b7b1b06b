package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/chrono2k/gradmateAPI/internal/model"
)

// ProjectFileRepository 附件元数据访问接口
type ProjectFileRepository interface {
	Create(ctx context.Context, file *model.ProjectFile) error
	GetByID(ctx context.Context, id int64) (*model.ProjectFile, error)
	ListByProject(ctx context.Context, projectID int64) ([]model.ProjectFile, error)
	Delete(ctx context.Context, id int64) error
}

type projectFileRepo struct {
	db *gorm.DB
}

// NewProjectFileRepo 创建 ProjectFileRepository 实例
func NewProjectFileRepo(db *gorm.DB) ProjectFileRepository {
	return &projectFileRepo{db: db}
}

func (r *projectFileRepo) Create(ctx context.Context, file *model.ProjectFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *projectFileRepo) GetByID(ctx context.Context, id int64) (*model.ProjectFile, error) {
	var file model.ProjectFile
	if err := r.db.WithContext(ctx).First(&file, id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *projectFileRepo) ListByProject(ctx context.Context, projectID int64) ([]model.ProjectFile, error) {
	var files []model.ProjectFile
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&files).Error
	return files, err
}

func (r *projectFileRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.ProjectFile{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
