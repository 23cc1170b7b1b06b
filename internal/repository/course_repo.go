package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chrono2k/gradmateAPI/internal/model"
)

// CourseStats 课程统计原始数据
type CourseStats struct {
	Total         int64
	Active        int64
	Inactive      int64
	LastCreatedAt *time.Time
}

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	List(ctx context.Context, status string) ([]model.Course, error)
	Search(ctx context.Context, filter SearchFilter) ([]model.Course, error)
	ExistsActiveName(ctx context.Context, name string, excludeID int64) (bool, error)
	Statistics(ctx context.Context) (*CourseStats, error)
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

// List status 为空返回全部
func (r *courseRepo) List(ctx context.Context, status string) ([]model.Course, error) {
	var courses []model.Course
	db := r.db.WithContext(ctx)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("name ASC").Find(&courses).Error
	return courses, err
}

func (r *courseRepo) Search(ctx context.Context, filter SearchFilter) ([]model.Course, error) {
	var courses []model.Course
	db := applySearch(r.db.WithContext(ctx).Model(&model.Course{}), "course", filter)
	err := db.Order("name ASC").Find(&courses).Error
	return courses, err
}

// ExistsActiveName 活跃课程名称是否已占用（大小写不敏感）
func (r *courseRepo) ExistsActiveName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("LOWER(name) = LOWER(?) AND status = ?", name, model.StatusActive)
	if excludeID > 0 {
		db = db.Where("id <> ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *courseRepo) Statistics(ctx context.Context) (*CourseStats, error) {
	var row struct {
		Total         int64
		Active        int64
		Inactive      int64
		LastCreatedAt *time.Time
	}
	err := r.db.WithContext(ctx).
		Model(&model.Course{}).
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = ?) AS active,
			COUNT(*) FILTER (WHERE status = ?) AS inactive,
			MAX(created_at) AS last_created_at`, model.StatusActive, model.StatusInactive).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &CourseStats{
		Total:         row.Total,
		Active:        row.Active,
		Inactive:      row.Inactive,
		LastCreatedAt: row.LastCreatedAt,
	}, nil
}
