package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/pkg/response"
)

// IdentityKey JWT 中间件写入调用方身份所用的上下文键
const IdentityKey = "identity"

// SetIdentity 由认证中间件调用
func SetIdentity(c *gin.Context, who dto.Identity) {
	c.Set(IdentityKey, who)
}

// MustGetIdentity 从 Gin 上下文中安全提取调用方身份。
// 如果中间件未注入身份，写入 403 响应并返回 false，调用方应直接 return。
func MustGetIdentity(c *gin.Context) (dto.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		response.Forbidden(c, 10002, "Token ausente")
		return dto.Identity{}, false
	}
	who, ok := v.(dto.Identity)
	if !ok || who.UserID <= 0 {
		response.Forbidden(c, 10002, "Token inválido")
		return dto.Identity{}, false
	}
	return who, true
}

// pathID 解析路径中的正整数 id
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "ID inválido")
		return 0, false
	}
	return id, true
}
