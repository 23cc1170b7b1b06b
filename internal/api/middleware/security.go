package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders 安全响应头；纯 API 服务，只允许加载自身的图片（签名）
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy", "default-src 'none'; img-src 'self'; frame-ancestors 'none'")
		c.Header("Cross-Origin-Resource-Policy", "cross-origin")

		c.Next()
	}
}
