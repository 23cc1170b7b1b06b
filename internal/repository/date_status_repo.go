package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chrono2k/gradmateAPI/internal/model"
)

// DateStatusRepository 日历标记数据访问接口
type DateStatusRepository interface {
	Upsert(ctx context.Context, ds *model.DateStatus) error
	GetByDate(ctx context.Context, date time.Time) (*model.DateStatus, error)
	DeleteByDate(ctx context.Context, date time.Time) (int64, error)
	List(ctx context.Context, year int) ([]model.DateStatus, error)
	ListByStatus(ctx context.Context, status int) ([]model.DateStatus, error)
	DeleteYear(ctx context.Context, year int) (int64, error)
	CountByStatus(ctx context.Context, year int) (map[int]int64, error)
}

type dateStatusRepo struct {
	db *gorm.DB
}

// NewDateStatusRepo 创建 DateStatusRepository 实例
func NewDateStatusRepo(db *gorm.DB) DateStatusRepository {
	return &dateStatusRepo{db: db}
}

// yearRange 返回 [year-01-01, year+1-01-01)
func yearRange(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

func (r *dateStatusRepo) inYear(db *gorm.DB, year int) *gorm.DB {
	if year <= 0 {
		return db
	}
	start, end := yearRange(year)
	return db.Where("date >= ? AND date < ?", start, end)
}

// Upsert 同一日期已存在时覆盖状态
func (r *dateStatusRepo) Upsert(ctx context.Context, ds *model.DateStatus) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(ds).Error
}

func (r *dateStatusRepo) GetByDate(ctx context.Context, date time.Time) (*model.DateStatus, error) {
	var ds model.DateStatus
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		First(&ds).Error
	if err != nil {
		return nil, err
	}
	return &ds, nil
}

func (r *dateStatusRepo) DeleteByDate(ctx context.Context, date time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("date = ?", date).
		Delete(&model.DateStatus{})
	return res.RowsAffected, res.Error
}

// List year <= 0 时返回全部
func (r *dateStatusRepo) List(ctx context.Context, year int) ([]model.DateStatus, error) {
	var list []model.DateStatus
	err := r.inYear(r.db.WithContext(ctx), year).
		Order("date ASC").
		Find(&list).Error
	return list, err
}

func (r *dateStatusRepo) ListByStatus(ctx context.Context, status int) ([]model.DateStatus, error) {
	var list []model.DateStatus
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("date ASC").
		Find(&list).Error
	return list, err
}

func (r *dateStatusRepo) DeleteYear(ctx context.Context, year int) (int64, error) {
	start, end := yearRange(year)
	res := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", start, end).
		Delete(&model.DateStatus{})
	return res.RowsAffected, res.Error
}

func (r *dateStatusRepo) CountByStatus(ctx context.Context, year int) (map[int]int64, error) {
	var rows []struct {
		Status int
		Count  int64
	}
	err := r.inYear(r.db.WithContext(ctx).Model(&model.DateStatus{}), year).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
