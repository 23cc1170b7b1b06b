package dto

// ── 学生模块 DTO ──

// CreateStudentRequest 创建学生（同时创建登录账号，用户名 = email）
type CreateStudentRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Registration string  `json:"registration"`
	Observation  *string `json:"observation"`
	Image        *string `json:"image"`
	Telephone    *string `json:"telephone"`
}

// UpdateStudentRequest 部分更新；学业状态只由项目结题联动修改
type UpdateStudentRequest struct {
	ID           int64   `json:"id"`
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Registration *string `json:"registration"`
	Observation  *string `json:"observation"`
	Image        *string `json:"image"`
	Telephone    *string `json:"telephone"`
}

// StudentResponse 学生信息；status 为学业状态，user_status 为账号状态
type StudentResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Registration string  `json:"registration"`
	Observation  *string `json:"observation"`
	Image        *string `json:"image"`
	Telephone    *string `json:"telephone"`
	Status       string  `json:"status"`
	UserStatus   string  `json:"user_status"`
	UserID       *int64  `json:"user_id"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}
