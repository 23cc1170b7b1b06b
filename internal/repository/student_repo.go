package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/chrono2k/gradmateAPI/internal/model"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*model.Student, error)
	GetByRegistration(ctx context.Context, registration string) (*model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	List(ctx context.Context, status string) ([]model.Student, error)
	Search(ctx context.Context, filter SearchFilter) ([]model.Student, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Student, error)
	MarkGraduatedByProject(ctx context.Context, projectID int64) (int64, error)
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Omit("User").Create(student).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).Preload("User").First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByUserID(ctx context.Context, userID int64) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByRegistration(ctx context.Context, registration string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("registration = ?", registration).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Omit("User").Save(student).Error
}

// List 按关联账号状态过滤，status 为空返回全部
func (r *studentRepo) List(ctx context.Context, status string) ([]model.Student, error) {
	var students []model.Student
	db := r.db.WithContext(ctx).Preload("User")
	if status != "" {
		db = db.Joins("JOIN users ON users.id = students.user_id").
			Where("users.status = ?", status)
	}
	err := db.Order("students.name ASC").Find(&students).Error
	return students, err
}

func (r *studentRepo) Search(ctx context.Context, filter SearchFilter) ([]model.Student, error) {
	var students []model.Student
	db := applySearch(r.db.WithContext(ctx).Model(&model.Student{}).Preload("User"), "students", filter)
	err := db.Order("students.name ASC").Find(&students).Error
	return students, err
}

func (r *studentRepo) ListByIDs(ctx context.Context, ids []int64) ([]model.Student, error) {
	var students []model.Student
	if len(ids) == 0 {
		return students, nil
	}
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id IN ?", ids).
		Find(&students).Error
	return students, err
}

// MarkGraduatedByProject 项目完成后将关联学生置为 formado，返回受影响行数
func (r *studentRepo) MarkGraduatedByProject(ctx context.Context, projectID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("id IN (?)", r.db.Model(&model.ProjectStudent{}).Select("student_id").Where("project_id = ?", projectID)).
		Update("status", model.StudentStatusGraduated)
	return res.RowsAffected, res.Error
}
