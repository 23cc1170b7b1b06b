package dto

// ── 答辩纪要（ata）DTO ──

// CreateDefenseMinutesRequest 创建答辩纪要（JSON 或 multipart，file 可选）
type CreateDefenseMinutesRequest struct {
	Title       string
	Result      string
	StudentName *string
	Location    *string
	StartedAt   *string
	FileID      *int64
	File        *Upload
}

// DefenseMinutesResponse 答辩纪要
type DefenseMinutesResponse struct {
	ID          int64                `json:"id"`
	ProjectID   int64                `json:"project_id"`
	ProjectName string               `json:"project_name,omitempty"`
	Title       string               `json:"title"`
	Result      string               `json:"result"`
	StudentName *string              `json:"student_name"`
	Location    *string              `json:"location"`
	StartedAt   *string              `json:"started_at"`
	File        *ProjectFileResponse `json:"file"`
	CreatedBy   *int64               `json:"created_by"`
	CreatedAt   string               `json:"created_at"`
}
