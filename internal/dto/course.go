package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程（JSON 或 multipart，签名可选）
type CreateCourseRequest struct {
	Name                   string
	Observation            *string
	ResponsibleTeacherName *string
	Signature              *Upload
}

// UpdateCourseRequest 部分更新，nil 字段不修改
type UpdateCourseRequest struct {
	ID                     int64
	Name                   *string
	Observation            *string
	Status                 *string
	ResponsibleTeacherName *string
	Signature              *Upload
}

// CourseResponse 课程信息
type CourseResponse struct {
	ID                      int64   `json:"id"`
	Name                    string  `json:"name"`
	Observation             *string `json:"observation"`
	Status                  string  `json:"status"`
	ResponsibleTeacherName  *string `json:"responsible_teacher_name"`
	ResponsibleSignatureURL *string `json:"responsible_signature_url"`
	CreatedAt               string  `json:"created_at"`
	UpdatedAt               string  `json:"updated_at"`
}

// CourseStatistics 课程统计
type CourseStatistics struct {
	Total         int64   `json:"total"`
	Active        int64   `json:"ativos"`
	Inactive      int64   `json:"inativos"`
	LastCreatedAt *string `json:"ultimo_cadastro"`
}
