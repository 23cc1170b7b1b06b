package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chrono2k/gradmateAPI/internal/api/handler"
	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/pkg/jwt"
	"github.com/chrono2k/gradmateAPI/pkg/response"
)

// JWTAuth 认证中间件
// 从 Authorization: <token>（可带 Bearer 前缀）中提取并校验 Token，
// 缺失或无效均返回 403；具体原因只记录日志。
func JWTAuth(jwtMgr *jwt.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader("Authorization"))
		if after, ok := strings.CutPrefix(token, "Bearer "); ok {
			token = strings.TrimSpace(after)
		}
		if token == "" {
			response.Forbidden(c, 10002, "Token ausente")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(token)
		if err != nil {
			logger.Debug("Token 校验失败",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
				zap.Error(err),
			)
			response.Forbidden(c, 10002, "Token inválido")
			c.Abort()
			return
		}

		handler.SetIdentity(c, dto.Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})
		c.Next()
	}
}

// Enforcer 路由级授权决策
type Enforcer interface {
	Enforce(role, route, method string) (bool, error)
}

// Authorize 按 (角色, 路由模板, 方法) 做 RBAC 判定，需在 JWTAuth 之后使用
func Authorize(enforcer Enforcer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		who, ok := handler.MustGetIdentity(c)
		if !ok {
			c.Abort()
			return
		}

		route := c.FullPath()
		allowed, err := enforcer.Enforce(who.Role, route, c.Request.Method)
		if err != nil {
			logger.Error("权限判定失败", zap.String("route", route), zap.Error(err))
			response.InternalError(c)
			c.Abort()
			return
		}
		if !allowed {
			response.Forbidden(c, 10003, "Acesso negado")
			c.Abort()
			return
		}

		c.Next()
	}
}
