package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/chrono2k/gradmateAPI/internal/model"
)

// TeacherRepository 教师数据访问接口
type TeacherRepository interface {
	Create(ctx context.Context, teacher *model.Teacher) error
	GetByID(ctx context.Context, id int64) (*model.Teacher, error)
	GetByUserID(ctx context.Context, userID int64) (*model.Teacher, error)
	Update(ctx context.Context, teacher *model.Teacher) error
	List(ctx context.Context, status string) ([]model.Teacher, error)
	Search(ctx context.Context, filter SearchFilter) ([]model.Teacher, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Teacher, error)
}

type teacherRepo struct {
	db *gorm.DB
}

// NewTeacherRepo 创建 TeacherRepository 实例
func NewTeacherRepo(db *gorm.DB) TeacherRepository {
	return &teacherRepo{db: db}
}

func (r *teacherRepo) Create(ctx context.Context, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Omit("User").Create(teacher).Error
}

func (r *teacherRepo) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	var teacher model.Teacher
	if err := r.db.WithContext(ctx).Preload("User").First(&teacher, id).Error; err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) GetByUserID(ctx context.Context, userID int64) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) Update(ctx context.Context, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Omit("User").Save(teacher).Error
}

// List 按关联账号状态过滤，status 为空返回全部
func (r *teacherRepo) List(ctx context.Context, status string) ([]model.Teacher, error) {
	var teachers []model.Teacher
	db := r.db.WithContext(ctx).Preload("User")
	if status != "" {
		db = db.Joins("JOIN users ON users.id = teachers.user_id").
			Where("users.status = ?", status)
	}
	err := db.Order("teachers.name ASC").Find(&teachers).Error
	return teachers, err
}

func (r *teacherRepo) Search(ctx context.Context, filter SearchFilter) ([]model.Teacher, error) {
	var teachers []model.Teacher
	db := applySearch(r.db.WithContext(ctx).Model(&model.Teacher{}).Preload("User"), "teachers", filter)
	err := db.Order("teachers.name ASC").Find(&teachers).Error
	return teachers, err
}

func (r *teacherRepo) ListByIDs(ctx context.Context, ids []int64) ([]model.Teacher, error) {
	var teachers []model.Teacher
	if len(ids) == 0 {
		return teachers, nil
	}
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id IN ?", ids).
		Find(&teachers).Error
	return teachers, err
}
