package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User           UserRepository
	Course         CourseRepository
	Teacher        TeacherRepository
	Student        StudentRepository
	Project        ProjectRepository
	Report         ReportRepository
	DateStatus     DateStatusRepository
	ProjectFile    ProjectFileRepository
	DefenseMinutes DefenseMinutesRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:             db,
		User:           NewUserRepo(db),
		Course:         NewCourseRepo(db),
		Teacher:        NewTeacherRepo(db),
		Student:        NewStudentRepo(db),
		Project:        NewProjectRepo(db),
		Report:         NewReportRepo(db),
		DateStatus:     NewDateStatusRepo(db),
		ProjectFile:    NewProjectFileRepo(db),
		DefenseMinutes: NewDefenseMinutesRepo(db),
	}
}

// Transaction 在同一数据库事务中执行 fn，fn 返回错误时回滚
//
// fn 收到绑定到事务的 Repository 聚合。未绑定数据库（单元测试注入 mock）时直接执行 fn。
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// WithTx 返回绑定到给定 gorm 事务的 Repository 聚合
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// SearchFilter 名称模糊匹配优先，否则按创建时间区间，二者皆空返回全部
type SearchFilter struct {
	Name string
	From *time.Time
	To   *time.Time // 包含当天
}

// applySearch 对 table.name / table.created_at 应用搜索条件
func applySearch(db *gorm.DB, table string, f SearchFilter) *gorm.DB {
	if name := strings.TrimSpace(f.Name); name != "" {
		return db.Where("LOWER("+table+".name) LIKE ?", "%"+escapeLike(strings.ToLower(name))+"%")
	}
	if f.From != nil {
		db = db.Where(table+".created_at >= ?", *f.From)
	}
	if f.To != nil {
		db = db.Where(table+".created_at < ?", f.To.AddDate(0, 0, 1))
	}
	return db
}

// escapeLike 转义 LIKE 通配符
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
