package model

// 进度报告状态
const (
	ReportStatusPending = "pendente"
	ReportStatusDone    = "concluido"
)

// Report 项目进度报告 — 对应 report
type Report struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"                   json:"id"`
	ProjectID   int64   `gorm:"not null"                                   json:"project_id"`
	Description *string `gorm:"type:text"                                  json:"description"`
	Pendency    *string `gorm:"type:text"                                  json:"pendency"`
	Status      string  `gorm:"type:varchar(10);not null;default:pendente" json:"status"`
	NextSteps   *string `gorm:"type:text"                                  json:"next_steps"`
	Local       *string `gorm:"type:text"                                  json:"local"`
	Feedback    *string `gorm:"type:text"                                  json:"feedback"`
	TeacherID   *int64  `json:"teacher_id"`
	Timestamps

	// 关联
	Teacher *Teacher `gorm:"foreignKey:TeacherID" json:"-"`
}

// TableName 指定表名
func (Report) TableName() string { return "report" }
