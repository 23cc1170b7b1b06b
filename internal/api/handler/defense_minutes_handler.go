package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chrono2k/gradmateAPI/internal/service"
	"github.com/chrono2k/gradmateAPI/pkg/response"
)

// DefenseMinutesHandler 答辩纪要（ata）HTTP 处理器
type DefenseMinutesHandler struct {
	minutesSvc service.DefenseMinutesService
	logger     *zap.Logger
}

// NewDefenseMinutesHandler 创建 DefenseMinutesHandler
func NewDefenseMinutesHandler(minutesSvc service.DefenseMinutesService, logger *zap.Logger) *DefenseMinutesHandler {
	return &DefenseMinutesHandler{minutesSvc: minutesSvc, logger: logger}
}

// CreateAta JSON 或 multipart（可附带 file）
// POST /project/:id/atas
func (h *DefenseMinutesHandler) CreateAta(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req, err := parseDefenseMinutesRequest(c)
	if err != nil {
		invalidBody(c)
		return
	}

	ata, err := h.minutesSvc.Create(c.Request.Context(), who, id, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, "Ata criada com sucesso", ata)
}

// ListAtas GET /project/:id/atas
func (h *DefenseMinutesHandler) ListAtas(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	atas, err := h.minutesSvc.List(c.Request.Context(), who, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.List(c, atas, len(atas))
}

// ListAllAtas 调用方可见项目的全部纪要
// GET /project/atas
func (h *DefenseMinutesHandler) ListAllAtas(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	atas, err := h.minutesSvc.ListAll(c.Request.Context(), who)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.List(c, atas, len(atas))
}

// DeleteAta DELETE /project/:id/atas/:ata_id
func (h *DefenseMinutesHandler) DeleteAta(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ataID, ok := pathID(c, "ata_id")
	if !ok {
		return
	}

	if err := h.minutesSvc.Delete(c.Request.Context(), who, id, ataID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Ata removida com sucesso", nil)
}
