package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/service"
	"github.com/chrono2k/gradmateAPI/pkg/response"
)

// ProjectFileHandler 项目附件 HTTP 处理器
type ProjectFileHandler struct {
	fileSvc service.ProjectFileService
	logger  *zap.Logger
}

// NewProjectFileHandler 创建 ProjectFileHandler
func NewProjectFileHandler(fileSvc service.ProjectFileService, logger *zap.Logger) *ProjectFileHandler {
	return &ProjectFileHandler{fileSvc: fileSvc, logger: logger}
}

// UploadFiles multipart 字段 files（可多个）或 file
// POST /project/:id/files
func (h *ProjectFileHandler) UploadFiles(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !isMultipart(c) {
		response.BadRequest(c, 17002, "Nenhum arquivo enviado")
		return
	}
	uploads, err := formUploads(c, "files", "file")
	if err != nil {
		invalidBody(c)
		return
	}

	files, err := h.fileSvc.Upload(c.Request.Context(), who, id, uploads)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, "Arquivos enviados com sucesso", files)
}

// ListFiles GET /project/:id/files
func (h *ProjectFileHandler) ListFiles(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	files, err := h.fileSvc.List(c.Request.Context(), who, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.List(c, files, len(files))
}

// DownloadFile GET /project/:id/files/:file_id/download
func (h *ProjectFileHandler) DownloadFile(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	fileID, ok := pathID(c, "file_id")
	if !ok {
		return
	}

	file, err := h.fileSvc.Download(c.Request.Context(), who, id, fileID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer file.Content.Close()
	streamFile(c, file, true)
}

// DeleteFile DELETE /project/:id/files/:file_id
func (h *ProjectFileHandler) DeleteFile(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	fileID, ok := pathID(c, "file_id")
	if !ok {
		return
	}

	if err := h.fileSvc.Delete(c.Request.Context(), who, id, fileID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Arquivo removido com sucesso", nil)
}

// BulkDeleteFiles 逐项独立删除，结果分列 deleted / failed
// DELETE /project/:id/files {file_ids}
func (h *ProjectFileHandler) BulkDeleteFiles(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.BulkDeleteFilesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	result, err := h.fileSvc.BulkDelete(c.Request.Context(), who, id, req.FileIDs)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Remoção concluída", result)
}
