package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/chrono2k/gradmateAPI/pkg/errors"
	"github.com/chrono2k/gradmateAPI/pkg/response"
)

var kindStatus = map[apperrors.Kind]int{
	apperrors.KindValidation:    http.StatusBadRequest,
	apperrors.KindUnauthorized:  http.StatusUnauthorized,
	apperrors.KindForbidden:     http.StatusForbidden,
	apperrors.KindNotFound:      http.StatusNotFound,
	apperrors.KindConflict:      http.StatusConflict,
	apperrors.KindUnprocessable: http.StatusUnprocessableEntity,
}

// respondError 业务错误按类别映射状态码；其余错误记录日志后返回通用 500
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	if appErr, ok := apperrors.As(err); ok {
		if status, known := kindStatus[appErr.Kind]; known {
			response.Error(c, status, appErr.Code, appErr.Message)
			return
		}
	}

	logger.Error("请求处理失败",
		zap.String("method", c.Request.Method),
		zap.String("route", c.FullPath()),
		zap.Error(err),
	)
	_ = c.Error(err)
	response.InternalError(c)
}

// invalidBody 请求体解析或 binding 校验失败
func invalidBody(c *gin.Context) {
	response.BadRequest(c, 10001, "Dados inválidos")
}
