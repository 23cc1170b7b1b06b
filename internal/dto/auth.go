package dto

// ── 认证与账号管理 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录成功
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest 管理员创建账号
type CreateUserRequest struct {
	Username  string  `json:"username"  binding:"required,min=3,max=255"`
	Password  string  `json:"password"  binding:"required,min=3,max=72"`
	Authority string  `json:"authority" binding:"required,oneof=admin teacher student"`
	Name      *string `json:"name"      binding:"omitempty,max=255"`
}

// UpdateAuthorityRequest 修改账号权限
type UpdateAuthorityRequest struct {
	Authority string `json:"authority" binding:"required,oneof=admin teacher student"`
}

// UpdateStatusRequest 启用 / 停用账号
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ativo inativo"`
}

// ResetPasswordRequest 重置密码，未提供时恢复为默认密码
type ResetPasswordRequest struct {
	Password *string `json:"password" binding:"omitempty,min=3,max=72"`
}
