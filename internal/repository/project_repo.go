package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chrono2k/gradmateAPI/internal/model"
)

// ProjectFilter 项目列表条件；ViewerUserID > 0 时仅返回该账号作为教师或学生参与的项目
type ProjectFilter struct {
	Status       string
	Name         string
	ViewerUserID int64
}

// ProjectRepository 项目及成员关系数据访问接口
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ProjectFilter) ([]model.Project, error)
	CountByStatus(ctx context.Context, viewerUserID int64) (map[string]int64, error)

	// ── 教师关联 ──
	ListTeacherLinks(ctx context.Context, projectID int64) ([]model.ProjectTeacher, error)
	GetTeacherLink(ctx context.Context, projectID, teacherID int64) (*model.ProjectTeacher, error)
	AddTeacherLink(ctx context.Context, link *model.ProjectTeacher) error
	RemoveTeacherLinks(ctx context.Context, projectID int64, teacherIDs []int64, role string) (int64, error)
	UserHasTeacherRole(ctx context.Context, projectID, userID int64, role string) (bool, error)

	// ── 学生关联 ──
	ListStudents(ctx context.Context, projectID int64) ([]model.Student, error)
	AddStudentLink(ctx context.Context, link *model.ProjectStudent) error
	RemoveStudentLinks(ctx context.Context, projectID int64, studentIDs []int64) (int64, error)
	UserIsStudent(ctx context.Context, projectID, userID int64) (bool, error)
}

type projectRepo struct {
	db *gorm.DB
}

// NewProjectRepo 创建 ProjectRepository 实例
func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{db: db}
}

const (
	teacherMemberSQL = `EXISTS (SELECT 1 FROM teacher_project tp
		JOIN teachers t ON t.id = tp.teacher_id
		WHERE tp.project_id = projects.id AND t.user_id = ?)`
	studentMemberSQL = `EXISTS (SELECT 1 FROM student_project sp
		JOIN students s ON s.id = sp.student_id
		WHERE sp.project_id = projects.id AND s.user_id = ?)`
)

// visibleTo 可见性下推到 SQL
func visibleTo(db *gorm.DB, userID int64) *gorm.DB {
	if userID <= 0 {
		return db
	}
	return db.Where("("+teacherMemberSQL+" OR "+studentMemberSQL+")", userID, userID)
}

func (r *projectRepo) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Omit("Course").Create(project).Error
}

func (r *projectRepo) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Preload("Course").First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Omit("Course").Save(project).Error
}

// Delete 物理删除，成员、报告、附件元数据、答辩纪要由外键级联删除
func (r *projectRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Project{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *projectRepo) List(ctx context.Context, filter ProjectFilter) ([]model.Project, error) {
	var projects []model.Project
	db := visibleTo(r.db.WithContext(ctx).Model(&model.Project{}).Preload("Course"), filter.ViewerUserID)
	if filter.Status != "" {
		db = db.Where("projects.status = ?", filter.Status)
	}
	if filter.Name != "" {
		db = applySearch(db, "projects", SearchFilter{Name: filter.Name})
	}
	err := db.Order("projects.created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *projectRepo) CountByStatus(ctx context.Context, viewerUserID int64) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	db := visibleTo(r.db.WithContext(ctx).Model(&model.Project{}), viewerUserID)
	err := db.Select("projects.status AS status, COUNT(*) AS count").
		Group("projects.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// ────────────────────── 教师关联 ──────────────────────

func (r *projectRepo) ListTeacherLinks(ctx context.Context, projectID int64) ([]model.ProjectTeacher, error) {
	var links []model.ProjectTeacher
	err := r.db.WithContext(ctx).
		Preload("Teacher.User").
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&links).Error
	return links, err
}

func (r *projectRepo) GetTeacherLink(ctx context.Context, projectID, teacherID int64) (*model.ProjectTeacher, error) {
	var link model.ProjectTeacher
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND teacher_id = ?", projectID, teacherID).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// AddTeacherLink (project_id, teacher_id) 唯一，重复插入返回 gorm.ErrDuplicatedKey
func (r *projectRepo) AddTeacherLink(ctx context.Context, link *model.ProjectTeacher) error {
	return r.db.WithContext(ctx).Omit("Teacher").Create(link).Error
}

func (r *projectRepo) RemoveTeacherLinks(ctx context.Context, projectID int64, teacherIDs []int64, role string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("project_id = ? AND teacher_id IN ? AND role = ?", projectID, teacherIDs, role).
		Delete(&model.ProjectTeacher{})
	return res.RowsAffected, res.Error
}

// UserHasTeacherRole 账号对应的教师是否以 role 关联项目；role 为空表示任意角色
func (r *projectRepo) UserHasTeacherRole(ctx context.Context, projectID, userID int64, role string) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Table("teacher_project").
		Joins("JOIN teachers ON teachers.id = teacher_project.teacher_id").
		Where("teacher_project.project_id = ? AND teachers.user_id = ?", projectID, userID)
	if role != "" {
		db = db.Where("teacher_project.role = ?", role)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ────────────────────── 学生关联 ──────────────────────

func (r *projectRepo) ListStudents(ctx context.Context, projectID int64) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN student_project ON student_project.student_id = students.id").
		Where("student_project.project_id = ?", projectID).
		Order("students.name ASC").
		Find(&students).Error
	return students, err
}

// AddStudentLink 已存在时静默忽略
func (r *projectRepo) AddStudentLink(ctx context.Context, link *model.ProjectStudent) error {
	return r.db.WithContext(ctx).
		Omit("Student").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(link).Error
}

func (r *projectRepo) RemoveStudentLinks(ctx context.Context, projectID int64, studentIDs []int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("project_id = ? AND student_id IN ?", projectID, studentIDs).
		Delete(&model.ProjectStudent{})
	return res.RowsAffected, res.Error
}

func (r *projectRepo) UserIsStudent(ctx context.Context, projectID, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("student_project").
		Joins("JOIN students ON students.id = student_project.student_id").
		Where("student_project.project_id = ? AND students.user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
