package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/service"
	"github.com/chrono2k/gradmateAPI/pkg/response"
)

// DateStatusHandler 日历标记 HTTP 处理器
type DateStatusHandler struct {
	dateSvc service.DateStatusService
	logger  *zap.Logger
}

// NewDateStatusHandler 创建 DateStatusHandler
func NewDateStatusHandler(dateSvc service.DateStatusService, logger *zap.Logger) *DateStatusHandler {
	return &DateStatusHandler{dateSvc: dateSvc, logger: logger}
}

// ListDates GET /date-status/?year=
func (h *DateStatusHandler) ListDates(c *gin.Context) {
	var q dto.DateStatusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalidBody(c)
		return
	}
	dates, err := h.dateSvc.List(c.Request.Context(), q.Year)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.List(c, dates, len(dates))
}

// SetDate 新建或覆盖
// POST /date-status/
func (h *DateStatusHandler) SetDate(c *gin.Context) {
	var req dto.DateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}
	ds, err := h.dateSvc.Set(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Data salva com sucesso", ds)
}

// UpdateDate 仅修改已存在的日期
// PUT /date-status/
func (h *DateStatusHandler) UpdateDate(c *gin.Context) {
	var req dto.DateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}
	ds, err := h.dateSvc.Update(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Data atualizada com sucesso", ds)
}

// DeleteDate DELETE /date-status/ {date}
func (h *DateStatusHandler) DeleteDate(c *gin.Context) {
	var req dto.DateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}
	if err := h.dateSvc.Delete(c.Request.Context(), req.Date); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Data removida com sucesso", nil)
}

// Year 返回 {"YYYY-MM-DD": status}
// GET /date-status/year/:year
func (h *DateStatusHandler) Year(c *gin.Context) {
	year, ok := pathYear(c)
	if !ok {
		return
	}
	dates, err := h.dateSvc.Year(c.Request.Context(), year)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "", dates)
}

// ClearYear 清空整年，需 ?confirm=true
// DELETE /date-status/year/:year
func (h *DateStatusHandler) ClearYear(c *gin.Context) {
	year, ok := pathYear(c)
	if !ok {
		return
	}
	confirm, _ := strconv.ParseBool(c.Query("confirm"))

	result, err := h.dateSvc.ClearYear(c.Request.Context(), year, confirm)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Ano limpo com sucesso", result)
}

// Statistics GET /date-status/statistics?year=
func (h *DateStatusHandler) Statistics(c *gin.Context) {
	var q dto.DateStatusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalidBody(c)
		return
	}
	stats, err := h.dateSvc.Statistics(c.Request.Context(), q.Year)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "", stats)
}

// ByStatus GET /date-status/status/:status
func (h *DateStatusHandler) ByStatus(c *gin.Context) {
	status, err := strconv.Atoi(c.Param("status"))
	if err != nil {
		response.BadRequest(c, 19001, "Status inválido")
		return
	}
	dates, err := h.dateSvc.ByStatus(c.Request.Context(), status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.List(c, dates, len(dates))
}

func pathYear(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.BadRequest(c, 19004, "Ano inválido")
		return 0, false
	}
	return year, true
}
