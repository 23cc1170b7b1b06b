package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/service"
	"github.com/chrono2k/gradmateAPI/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	logger  *zap.Logger
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, logger: logger}
}

// Login 用户登录
// POST /auth/login/
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response.OK(c, "Login realizado com sucesso", result)
}

// CurrentUser 当前登录账号
// GET /auth/user
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	user, err := h.authSvc.CurrentUser(c.Request.Context(), who)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response.OK(c, "", user)
}
