package dto

// ── 教师模块 DTO ──

// CreateTeacherRequest 创建教师（同时创建登录账号，用户名 = email）
type CreateTeacherRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Observation *string `json:"observation"`
	Image       *string `json:"image"`
	Telephone   *string `json:"telephone"`
}

// UpdateTeacherRequest 部分更新
type UpdateTeacherRequest struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Observation *string `json:"observation"`
	Image       *string `json:"image"`
	Telephone   *string `json:"telephone"`
}

// TeacherResponse 教师信息
type TeacherResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Observation *string `json:"observation"`
	Image       *string `json:"image"`
	Telephone   *string `json:"telephone"`
	Status      string  `json:"status"`
	UserID      *int64  `json:"user_id"`
	Role        string  `json:"role,omitempty"` // 仅在项目详情中出现：advisor | guest
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
