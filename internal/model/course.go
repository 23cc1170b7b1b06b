package model

// Course 课程表 — 对应 course
type Course struct {
	ID                      int64   `gorm:"primaryKey;autoIncrement"                json:"id"`
	Name                    string  `gorm:"type:varchar(255);not null"              json:"name"`
	Observation             *string `gorm:"type:text"                               json:"observation"`
	Status                  string  `gorm:"type:varchar(10);not null;default:ativo" json:"status"`
	ResponsibleTeacherName  *string `gorm:"type:varchar(255)"                       json:"responsible_teacher_name"`
	ResponsibleSignatureURL *string `gorm:"type:varchar(500)"                       json:"responsible_signature_url"`
	Timestamps
}

// TableName 指定表名
func (Course) TableName() string { return "course" }
