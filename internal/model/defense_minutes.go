package model

import "time"

// 答辩结果
const (
	DefenseResultApproved = "aprovado"
	DefenseResultRejected = "reprovado"
	DefenseResultPending  = "pendente"
)

// ValidDefenseResult 校验答辩结果
func ValidDefenseResult(r string) bool {
	switch r {
	case DefenseResultApproved, DefenseResultRejected, DefenseResultPending:
		return true
	}
	return false
}

// DefenseMinutes 答辩纪要（ata）— 对应 defense_minutes
type DefenseMinutes struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"           json:"id"`
	ProjectID   int64      `gorm:"not null"                           json:"project_id"`
	FileID      *int64     `json:"file_id"`
	StudentName *string    `gorm:"type:varchar(255)"                  json:"student_name"`
	Title       string     `gorm:"type:text;not null"                 json:"title"`
	Result      string     `gorm:"type:varchar(20);not null"          json:"result"`
	Location    *string    `gorm:"type:varchar(255)"                  json:"location"`
	StartedAt   *time.Time `json:"started_at"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy   *int64     `json:"created_by"`

	// 关联
	File    *ProjectFile `gorm:"foreignKey:FileID"    json:"-"`
	Project *Project     `gorm:"foreignKey:ProjectID" json:"-"`
}

// TableName 指定表名
func (DefenseMinutes) TableName() string { return "defense_minutes" }
