package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/service"
	"github.com/chrono2k/gradmateAPI/pkg/response"
)

// StudentHandler 学生模块 HTTP 处理器
type StudentHandler struct {
	studentSvc service.StudentService
	logger     *zap.Logger
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService, logger *zap.Logger) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc, logger: logger}
}

// ListStudents 学生列表
// GET /student/?status=ativo|inativo|all
func (h *StudentHandler) ListStudents(c *gin.Context) {
	var q dto.StatusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalidBody(c)
		return
	}
	students, err := h.studentSvc.List(c.Request.Context(), q.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.List(c, students, len(students))
}

// GetStudent 学生详情
// GET /student/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	student, err := h.studentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "", student)
}

// CreateStudent 创建学生及其登录账号
// POST /student/
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}
	student, err := h.studentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, "Aluno criado com sucesso", student)
}

// UpdateStudent 部分更新
// PUT /student/
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID <= 0 {
		invalidBody(c)
		return
	}
	student, err := h.studentSvc.Update(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Aluno atualizado com sucesso", student)
}

// DeleteStudent 停用学生账号
// DELETE /student/ {id}
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}
	if err := h.studentSvc.Deactivate(c.Request.Context(), req.ID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Aluno desativado com sucesso", nil)
}

// ActivateStudent 重新启用
// POST /student/active {id}
func (h *StudentHandler) ActivateStudent(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}
	if err := h.studentSvc.Activate(c.Request.Context(), req.ID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Aluno ativado com sucesso", nil)
}

// SearchStudents 搜索
// POST /student/search
func (h *StudentHandler) SearchStudents(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}
	students, err := h.studentSvc.Search(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.List(c, students, len(students))
}
