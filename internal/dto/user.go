package dto

// UserResponse 账号信息（脱敏）
type UserResponse struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Authority string  `json:"authority"`
	Status    string  `json:"status"`
	Name      *string `json:"name,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// CurrentUserResponse GET /auth/user，附带关联的教师 / 学生档案 id
type CurrentUserResponse struct {
	UserResponse
	TeacherID *int64 `json:"teacher_id,omitempty"`
	StudentID *int64 `json:"student_id,omitempty"`
}
