package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/service"
	"github.com/chrono2k/gradmateAPI/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
	logger    *zap.Logger
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc, logger: logger}
}

// ListCourses 课程列表
// GET /course/?status=ativo|inativo|all
func (h *CourseHandler) ListCourses(c *gin.Context) {
	var q dto.StatusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalidBody(c)
		return
	}

	courses, err := h.courseSvc.List(c.Request.Context(), q.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.List(c, courses, len(courses))
}

// GetCourse 课程详情
// GET /course/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	course, err := h.courseSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "", course)
}

// CreateCourse 创建课程，multipart 时可附带 signature 文件
// POST /course/
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	parsed, err := parseCourseRequest(c)
	if err != nil {
		invalidBody(c)
		return
	}

	req := &dto.CreateCourseRequest{
		Observation:            parsed.Observation,
		ResponsibleTeacherName: parsed.ResponsibleTeacherName,
		Signature:              parsed.Signature,
	}
	if parsed.Name != nil {
		req.Name = *parsed.Name
	}

	course, err := h.courseSvc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, "Curso criado com sucesso", course)
}

// UpdateCourse 部分更新，id 在请求体中
// PUT /course/
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	req, err := parseCourseRequest(c)
	if err != nil || req.ID <= 0 {
		invalidBody(c)
		return
	}

	course, err := h.courseSvc.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Curso atualizado com sucesso", course)
}

// DeleteCourse 逻辑删除
// DELETE /course/ {id}
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}
	if err := h.courseSvc.Deactivate(c.Request.Context(), req.ID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Curso desativado com sucesso", nil)
}

// ActivateCourse 重新启用
// POST /course/active {id}
func (h *CourseHandler) ActivateCourse(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}
	if err := h.courseSvc.Activate(c.Request.Context(), req.ID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Curso ativado com sucesso", nil)
}

// SearchCourses 按名称或创建日期搜索
// POST /course/search
func (h *CourseHandler) SearchCourses(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}
	courses, err := h.courseSvc.Search(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.List(c, courses, len(courses))
}

// Statistics 课程统计
// GET /course/statistics
func (h *CourseHandler) Statistics(c *gin.Context) {
	stats, err := h.courseSvc.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "", stats)
}

// Signature 公开读取签名图片
// GET /course/signature/:filename
func (h *CourseHandler) Signature(c *gin.Context) {
	file, err := h.courseSvc.OpenSignature(c.Request.Context(), c.Param("filename"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer file.Content.Close()

	c.Header("Cache-Control", "public, max-age=86400")
	streamFile(c, file, false)
}

// streamFile 写出文件内容；attachment 为 true 时作为下载
func streamFile(c *gin.Context, file *dto.FileDownload, attachment bool) {
	if attachment {
		attachmentHeaders(c, file.Filename)
	}
	c.Header("Content-Type", file.ContentType)
	if file.Size != nil {
		c.Header("Content-Length", strconv.FormatInt(*file.Size, 10))
	}
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, file.Content); err != nil {
		_ = c.Error(err)
	}
}
