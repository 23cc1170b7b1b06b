package dto

// ── 进度报告 DTO ──

// CreateReportRequest 创建报告，project_id 来自路径；报告教师由调用方身份确定
type CreateReportRequest struct {
	Description *string `json:"description"`
	Pendency    *string `json:"pendency"`
	Status      *string `json:"status"`
	NextSteps   *string `json:"next_steps"`
	Local       *string `json:"local"`
	Feedback    *string `json:"feedback"`
}

// UpdateReportRequest 部分更新，不改变报告教师
type UpdateReportRequest = CreateReportRequest

// ReportResponse 报告信息
type ReportResponse struct {
	ID          int64            `json:"id"`
	ProjectID   int64            `json:"project_id"`
	Description *string          `json:"description"`
	Pendency    *string          `json:"pendency"`
	Status      string           `json:"status"`
	NextSteps   *string          `json:"next_steps"`
	Local       *string          `json:"local"`
	Feedback    *string          `json:"feedback"`
	Teacher     *TeacherResponse `json:"teacher"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
}
