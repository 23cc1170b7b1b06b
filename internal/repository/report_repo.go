package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/chrono2k/gradmateAPI/internal/model"
)

// ReportRepository 进度报告数据访问接口
type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
	GetByID(ctx context.Context, id int64) (*model.Report, error)
	Update(ctx context.Context, report *model.Report) error
	Delete(ctx context.Context, id int64) error
	ListByProject(ctx context.Context, projectID int64) ([]model.Report, error)
}

type reportRepo struct {
	db *gorm.DB
}

// NewReportRepo 创建 ReportRepository 实例
func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Omit("Teacher").Create(report).Error
}

func (r *reportRepo) GetByID(ctx context.Context, id int64) (*model.Report, error) {
	var report model.Report
	if err := r.db.WithContext(ctx).Preload("Teacher.User").First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) Update(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Omit("Teacher").Save(report).Error
}

func (r *reportRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Report{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reportRepo) ListByProject(ctx context.Context, projectID int64) ([]model.Report, error) {
	var reports []model.Report
	err := r.db.WithContext(ctx).
		Preload("Teacher.User").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}
