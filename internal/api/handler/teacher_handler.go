package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/service"
	"github.com/chrono2k/gradmateAPI/pkg/response"
)

// TeacherHandler 教师模块 HTTP 处理器
type TeacherHandler struct {
	teacherSvc service.TeacherService
	logger     *zap.Logger
}

// NewTeacherHandler 创建 TeacherHandler
func NewTeacherHandler(teacherSvc service.TeacherService, logger *zap.Logger) *TeacherHandler {
	return &TeacherHandler{teacherSvc: teacherSvc, logger: logger}
}

// ListTeachers 教师列表
// GET /teacher/?status=ativo|inativo|all
func (h *TeacherHandler) ListTeachers(c *gin.Context) {
	var q dto.StatusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalidBody(c)
		return
	}
	teachers, err := h.teacherSvc.List(c.Request.Context(), q.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.List(c, teachers, len(teachers))
}

// GetTeacher 教师详情
// GET /teacher/:id
func (h *TeacherHandler) GetTeacher(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	teacher, err := h.teacherSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "", teacher)
}

// CreateTeacher 创建教师及其登录账号
// POST /teacher/
func (h *TeacherHandler) CreateTeacher(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}
	teacher, err := h.teacherSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, "Professor criado com sucesso", teacher)
}

// UpdateTeacher 部分更新
// PUT /teacher/
func (h *TeacherHandler) UpdateTeacher(c *gin.Context) {
	var req dto.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID <= 0 {
		invalidBody(c)
		return
	}
	teacher, err := h.teacherSvc.Update(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Professor atualizado com sucesso", teacher)
}

// DeleteTeacher 停用教师账号
// DELETE /teacher/ {id}
func (h *TeacherHandler) DeleteTeacher(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}
	if err := h.teacherSvc.Deactivate(c.Request.Context(), req.ID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Professor desativado com sucesso", nil)
}

// ActivateTeacher 重新启用
// POST /teacher/active {id}
func (h *TeacherHandler) ActivateTeacher(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}
	if err := h.teacherSvc.Activate(c.Request.Context(), req.ID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Professor ativado com sucesso", nil)
}

// SearchTeachers 搜索
// POST /teacher/search
func (h *TeacherHandler) SearchTeachers(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}
	teachers, err := h.teacherSvc.Search(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.List(c, teachers, len(teachers))
}
