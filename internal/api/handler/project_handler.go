package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/model"
	"github.com/chrono2k/gradmateAPI/internal/service"
	"github.com/chrono2k/gradmateAPI/pkg/response"
)

// ProjectHandler 项目模块 HTTP 处理器（含成员与进度报告）
type ProjectHandler struct {
	projectSvc service.ProjectService
	reportSvc  service.ReportService
	logger     *zap.Logger
}

// NewProjectHandler 创建 ProjectHandler
func NewProjectHandler(projectSvc service.ProjectService, reportSvc service.ReportService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc, reportSvc: reportSvc, logger: logger}
}

// ────────────────────── 项目 ──────────────────────

// ListProjects 调用方可见的项目
// GET /project/?status=&name=
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	var q dto.ProjectListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		invalidBody(c)
		return
	}

	projects, err := h.projectSvc.List(c.Request.Context(), who, &q)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.List(c, projects, len(projects))
}

// GetProject 项目详情
// GET /project/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectSvc.GetByID(c.Request.Context(), who, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "", project)
}

// CreateProject 创建项目
// POST /project/
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	project, err := h.projectSvc.Create(c.Request.Context(), who, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, "Projeto criado com sucesso", project)
}

// UpdateProject 部分更新
// PUT /project/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	project, err := h.projectSvc.Update(c.Request.Context(), who, id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Projeto atualizado com sucesso", project)
}

// DeleteProject 物理删除
// DELETE /project/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.projectSvc.Delete(c.Request.Context(), who, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Projeto removido com sucesso", nil)
}

// Statistics 各阶段项目数
// GET /project/statistics
func (h *ProjectHandler) Statistics(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	stats, err := h.projectSvc.Statistics(c.Request.Context(), who)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "", stats)
}

// ────────────────────── 成员 ──────────────────────

// AddAdvisors POST /project/:id/teachers
func (h *ProjectHandler) AddAdvisors(c *gin.Context) { h.changeTeachers(c, model.ProjectRoleAdvisor, true) }

// RemoveAdvisors DELETE /project/:id/teachers
func (h *ProjectHandler) RemoveAdvisors(c *gin.Context) {
	h.changeTeachers(c, model.ProjectRoleAdvisor, false)
}

// AddGuests POST /project/:id/guests
func (h *ProjectHandler) AddGuests(c *gin.Context) { h.changeTeachers(c, model.ProjectRoleGuest, true) }

// RemoveGuests DELETE /project/:id/guests
func (h *ProjectHandler) RemoveGuests(c *gin.Context) { h.changeTeachers(c, model.ProjectRoleGuest, false) }

func (h *ProjectHandler) changeTeachers(c *gin.Context, role string, add bool) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.TeacherIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	var err error
	if add {
		err = h.projectSvc.AddTeachers(c.Request.Context(), who, id, role, req.TeacherIDs)
	} else {
		err = h.projectSvc.RemoveTeachers(c.Request.Context(), who, id, role, req.TeacherIDs)
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if add {
		response.OK(c, "Professores adicionados com sucesso", nil)
		return
	}
	response.OK(c, "Professores removidos com sucesso", nil)
}

// AddStudents POST /project/:id/students
func (h *ProjectHandler) AddStudents(c *gin.Context) { h.changeStudents(c, true) }

// RemoveStudents DELETE /project/:id/students
func (h *ProjectHandler) RemoveStudents(c *gin.Context) { h.changeStudents(c, false) }

func (h *ProjectHandler) changeStudents(c *gin.Context, add bool) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.StudentIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	var err error
	if add {
		err = h.projectSvc.AddStudents(c.Request.Context(), who, id, req.StudentIDs)
	} else {
		err = h.projectSvc.RemoveStudents(c.Request.Context(), who, id, req.StudentIDs)
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if add {
		response.OK(c, "Alunos adicionados com sucesso", nil)
		return
	}
	response.OK(c, "Alunos removidos com sucesso", nil)
}

// ────────────────────── 进度报告 ──────────────────────

// CreateReport POST /project/:id/reports
func (h *ProjectHandler) CreateReport(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	report, err := h.reportSvc.Create(c.Request.Context(), who, id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, "Relatório criado com sucesso", report)
}

// UpdateReport PUT /project/:id/reports/:report_id
func (h *ProjectHandler) UpdateReport(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	reportID, ok := pathID(c, "report_id")
	if !ok {
		return
	}
	var req dto.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	report, err := h.reportSvc.Update(c.Request.Context(), who, id, reportID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Relatório atualizado com sucesso", report)
}

// DeleteReport DELETE /project/:id/reports/:report_id
func (h *ProjectHandler) DeleteReport(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	reportID, ok := pathID(c, "report_id")
	if !ok {
		return
	}

	if err := h.reportSvc.Delete(c.Request.Context(), who, id, reportID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, "Relatório removido com sucesso", nil)
}
