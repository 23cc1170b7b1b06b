package model

// 项目阶段
const (
	ProjectStatusPreProject    = "Pré-projeto"
	ProjectStatusQualification = "Qualificação"
	ProjectStatusDefense       = "Defesa"
	ProjectStatusFinished      = "Finalizado"
	ProjectStatusLocked        = "Trancado"
)

// ProjectStatuses 全部合法阶段（顺序即统计输出顺序）
var ProjectStatuses = []string{
	ProjectStatusPreProject,
	ProjectStatusQualification,
	ProjectStatusDefense,
	ProjectStatusFinished,
	ProjectStatusLocked,
}

// 教师在项目中的角色
const (
	ProjectRoleAdvisor = "advisor"
	ProjectRoleGuest   = "guest"
)

// Project 毕业设计项目 — 对应 projects
type Project struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"                       json:"id"`
	Name        string  `gorm:"type:varchar(255);not null"                     json:"name"`
	Description *string `gorm:"type:text"                                      json:"description"`
	CourseID    *int64  `json:"course_id"`
	Observation *string `gorm:"type:text"                                      json:"observation"`
	Status      string  `gorm:"type:varchar(20);not null;default:Pré-projeto" json:"status"`
	Timestamps

	// 关联
	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (Project) TableName() string { return "projects" }

// ProjectTeacher 教师-项目关联 — 对应 teacher_project，(project_id, teacher_id) 唯一
type ProjectTeacher struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"                  json:"id"`
	TeacherID int64  `gorm:"not null"                                  json:"teacher_id"`
	ProjectID int64  `gorm:"not null"                                  json:"project_id"`
	Role      string `gorm:"type:varchar(20);not null;default:advisor" json:"role"`

	// 关联
	Teacher *Teacher `gorm:"foreignKey:TeacherID" json:"-"`
}

// TableName 指定表名
func (ProjectTeacher) TableName() string { return "teacher_project" }

// ProjectStudent 学生-项目关联 — 对应 student_project
type ProjectStudent struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID int64 `gorm:"not null"                 json:"student_id"`
	ProjectID int64 `gorm:"not null"                 json:"project_id"`

	// 关联
	Student *Student `gorm:"foreignKey:StudentID" json:"-"`
}

// TableName 指定表名
func (ProjectStudent) TableName() string { return "student_project" }
