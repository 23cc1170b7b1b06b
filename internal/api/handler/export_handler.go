package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chrono2k/gradmateAPI/internal/service"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
	logger    *zap.Logger
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, logger: logger}
}

// ExportAtas 导出答辩纪要
// GET /project/atas/export
func (h *ExportHandler) ExportAtas(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	buf, filename, err := h.exportSvc.ExportDefenseMinutes(c.Request.Context(), who)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.send(c, buf, filename, service.ContentTypeXLSX)
}

// ExportCalendar 导出某年的日期标记为 iCalendar
// GET /date-status/year/:year/ics
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	year, ok := pathYear(c)
	if !ok {
		return
	}
	buf, filename, err := h.exportSvc.ExportCalendar(c.Request.Context(), year)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.send(c, buf, filename, service.ContentTypeICS)
}

func (h *ExportHandler) send(c *gin.Context, buf *bytes.Buffer, filename, contentType string) {
	attachmentHeaders(c, filename)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
