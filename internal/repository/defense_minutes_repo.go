package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/chrono2k/gradmateAPI/internal/model"
)

// DefenseMinutesRepository 答辩纪要数据访问接口
type DefenseMinutesRepository interface {
	Create(ctx context.Context, m *model.DefenseMinutes) error
	GetByID(ctx context.Context, id int64) (*model.DefenseMinutes, error)
	ListByProject(ctx context.Context, projectID int64) ([]model.DefenseMinutes, error)
	ListVisible(ctx context.Context, viewerUserID int64) ([]model.DefenseMinutes, error)
	Delete(ctx context.Context, id int64) error
}

type defenseMinutesRepo struct {
	db *gorm.DB
}

// NewDefenseMinutesRepo 创建 DefenseMinutesRepository 实例
func NewDefenseMinutesRepo(db *gorm.DB) DefenseMinutesRepository {
	return &defenseMinutesRepo{db: db}
}

func (r *defenseMinutesRepo) Create(ctx context.Context, m *model.DefenseMinutes) error {
	return r.db.WithContext(ctx).Omit("File", "Project").Create(m).Error
}

func (r *defenseMinutesRepo) GetByID(ctx context.Context, id int64) (*model.DefenseMinutes, error) {
	var m model.DefenseMinutes
	if err := r.db.WithContext(ctx).Preload("File").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *defenseMinutesRepo) ListByProject(ctx context.Context, projectID int64) ([]model.DefenseMinutes, error) {
	var list []model.DefenseMinutes
	err := r.db.WithContext(ctx).
		Preload("File").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// ListVisible 跨项目列出答辩纪要，viewerUserID > 0 时按项目可见性过滤
func (r *defenseMinutesRepo) ListVisible(ctx context.Context, viewerUserID int64) ([]model.DefenseMinutes, error) {
	var list []model.DefenseMinutes
	db := r.db.WithContext(ctx).
		Preload("File").
		Preload("Project").
		Joins("JOIN projects ON projects.id = defense_minutes.project_id")
	err := visibleTo(db, viewerUserID).
		Order("defense_minutes.created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *defenseMinutesRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.DefenseMinutes{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
