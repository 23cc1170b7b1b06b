package dto

// ── 项目模块 DTO ──

// CreateProjectRequest 创建项目
type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CourseID    *int64  `json:"course_id"`
	Observation *string `json:"observation"`
	Status      *string `json:"status"`
}

// UpdateProjectRequest 部分更新，id 来自路径
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	CourseID    *int64  `json:"course_id"`
	Observation *string `json:"observation"`
	Status      *string `json:"status"`
}

// ProjectListQuery 项目列表过滤
type ProjectListQuery struct {
	Status string `form:"status"`
	Name   string `form:"name"`
}

// TeacherIDsRequest 添加 / 移除教师（advisor 或 guest）
type TeacherIDsRequest struct {
	TeacherIDs []int64 `json:"teacher_ids" binding:"required,min=1,dive,min=1"`
}

// StudentIDsRequest 添加 / 移除学生
type StudentIDsRequest struct {
	StudentIDs []int64 `json:"student_ids" binding:"required,min=1,dive,min=1"`
}

// ProjectResponse 项目列表项
type ProjectResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	CourseID    *int64          `json:"course_id"`
	Course      *CourseResponse `json:"course"`
	Observation *string         `json:"observation"`
	Status      string          `json:"status"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

// ProjectDetailResponse 项目详情，包含成员与报告
type ProjectDetailResponse struct {
	ProjectResponse
	Teachers []TeacherResponse `json:"teachers"`
	Students []StudentResponse `json:"students"`
	Reports  []ReportResponse  `json:"reports"`
}

// ProjectStatistics 项目统计
type ProjectStatistics struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}
