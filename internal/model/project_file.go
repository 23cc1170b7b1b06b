package model

import "time"

// ProjectFile 项目附件元数据 — 对应 project_files，内容存放于 storage
type ProjectFile struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"           json:"id"`
	ProjectID    int64     `gorm:"not null"                           json:"project_id"`
	OriginalName string    `gorm:"type:varchar(255);not null"         json:"original_name"`
	StoredName   string    `gorm:"type:varchar(255);not null;unique"  json:"stored_name"`
	MimeType     *string   `gorm:"type:varchar(255)"                  json:"mime_type"`
	Size         *int64    `json:"size"`
	UploadedBy   *int64    `json:"uploaded_by"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (ProjectFile) TableName() string { return "project_files" }
