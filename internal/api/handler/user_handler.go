package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/service"
	"github.com/chrono2k/gradmateAPI/pkg/response"
)

// UserHandler 账号管理 HTTP 处理器（管理员）
type UserHandler struct {
	userSvc service.UserService
	logger  *zap.Logger
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userSvc: userSvc, logger: logger}
}

// ListUsers 账号列表
// GET /auth/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.List(c, users, len(users))
}

// CreateUser 创建账号
// POST /auth/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, "Usuário criado com sucesso", user)
}

// UpdateAuthority 修改账号权限
// PUT /auth/users/:id
func (h *UserHandler) UpdateAuthority(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateAuthorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	if err := h.userSvc.UpdateAuthority(c.Request.Context(), who, id, req.Authority); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Permissão atualizada com sucesso", nil)
}

// UpdateStatus 启用 / 停用账号
// PATCH /auth/users/:id
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	if err := h.userSvc.UpdateStatus(c.Request.Context(), who, id, req.Status); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Status atualizado com sucesso", nil)
}

// ResetPassword 重置密码，请求体可为空
// POST /auth/users/:id/password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ResetPasswordRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c)
			return
		}
	}

	if err := h.userSvc.ResetPassword(c.Request.Context(), id, req.Password); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Senha redefinida com sucesso", nil)
}
