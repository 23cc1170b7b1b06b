package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/model"
	"github.com/chrono2k/gradmateAPI/internal/repository"
)

// ProjectService 项目业务接口
type ProjectService interface {
	List(ctx context.Context, who dto.Identity, q *dto.ProjectListQuery) ([]dto.ProjectResponse, error)
	GetByID(ctx context.Context, who dto.Identity, id int64) (*dto.ProjectDetailResponse, error)
	Create(ctx context.Context, who dto.Identity, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	Update(ctx context.Context, who dto.Identity, id int64, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, who dto.Identity, id int64) error
	Statistics(ctx context.Context, who dto.Identity) (*dto.ProjectStatistics, error)

	// 成员管理
	AddTeachers(ctx context.Context, who dto.Identity, projectID int64, role string, teacherIDs []int64) error
	RemoveTeachers(ctx context.Context, who dto.Identity, projectID int64, role string, teacherIDs []int64) error
	AddStudents(ctx context.Context, who dto.Identity, projectID int64, studentIDs []int64) error
	RemoveStudents(ctx context.Context, who dto.Identity, projectID int64, studentIDs []int64) error
}

type projectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProjectService 创建 ProjectService 实例
func NewProjectService(repo *repository.Repository, logger *zap.Logger) ProjectService {
	return &projectService{repo: repo, logger: logger}
}

// ────────────────────── 查询 ──────────────────────

// List 管理员看到全部，其余角色只看到自己参与的项目
func (s *projectService) List(ctx context.Context, who dto.Identity, q *dto.ProjectListQuery) ([]dto.ProjectResponse, error) {
	filter := repository.ProjectFilter{ViewerUserID: viewerFilter(who)}
	if q != nil {
		filter.Name = q.Name
		if q.Status != "" {
			status, ok := normalizeProjectStatus(q.Status)
			if !ok {
				return nil, ErrInvalidProjectStatus
			}
			filter.Status = status
		}
	}

	projects, err := s.repo.Project.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询项目列表失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		result = append(result, toProjectResponse(&projects[i]))
	}
	return result, nil
}

// GetByID 项目详情：成员与报告
func (s *projectService) GetByID(ctx context.Context, who dto.Identity, id int64) (*dto.ProjectDetailResponse, error) {
	project, err := loadProject(ctx, s.repo, who, id, accessView)
	if err != nil {
		return nil, err
	}

	links, err := s.repo.Project.ListTeacherLinks(ctx, id)
	if err != nil {
		s.logger.Error("查询项目教师失败", zap.Int64("project_id", id), zap.Error(err))
		return nil, err
	}
	students, err := s.repo.Project.ListStudents(ctx, id)
	if err != nil {
		s.logger.Error("查询项目学生失败", zap.Int64("project_id", id), zap.Error(err))
		return nil, err
	}
	reports, err := s.repo.Report.ListByProject(ctx, id)
	if err != nil {
		s.logger.Error("查询项目报告失败", zap.Int64("project_id", id), zap.Error(err))
		return nil, err
	}

	detail := &dto.ProjectDetailResponse{
		ProjectResponse: toProjectResponse(project),
		Teachers:        make([]dto.TeacherResponse, 0, len(links)),
		Students:        make([]dto.StudentResponse, 0, len(students)),
		Reports:         make([]dto.ReportResponse, 0, len(reports)),
	}
	for i := range links {
		if links[i].Teacher == nil {
			continue
		}
		t := toTeacherResponse(links[i].Teacher)
		t.Role = links[i].Role
		detail.Teachers = append(detail.Teachers, t)
	}
	for i := range students {
		detail.Students = append(detail.Students, toStudentResponse(&students[i]))
	}
	for i := range reports {
		detail.Reports = append(detail.Reports, toReportResponse(&reports[i]))
	}
	return detail, nil
}

// Statistics 按可见范围统计各阶段项目数
func (s *projectService) Statistics(ctx context.Context, who dto.Identity) (*dto.ProjectStatistics, error) {
	counts, err := s.repo.Project.CountByStatus(ctx, viewerFilter(who))
	if err != nil {
		s.logger.Error("项目统计失败", zap.Error(err))
		return nil, err
	}

	stats := &dto.ProjectStatistics{ByStatus: make(map[string]int64, len(model.ProjectStatuses))}
	for _, status := range model.ProjectStatuses {
		stats.ByStatus[status] = counts[status]
		stats.Total += counts[status]
	}
	return stats, nil
}

// ────────────────────── Create ──────────────────────

// Create 教师创建的项目自动以 advisor 身份关联创建者
func (s *projectService) Create(ctx context.Context, who dto.Identity, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	name, err := requireText(req.Name, "Nome do projeto")
	if err != nil {
		return nil, err
	}

	project := &model.Project{
		Name:        name,
		Observation: optionalText(req.Observation),
		Status:      model.ProjectStatusPreProject,
	}
	if req.Description != nil {
		desc, err := requireText(*req.Description, "Descrição")
		if err != nil {
			return nil, err
		}
		project.Description = &desc
	}
	if req.Status != nil {
		status, ok := normalizeProjectStatus(*req.Status)
		if !ok {
			return nil, ErrInvalidProjectStatus
		}
		project.Status = status
	}
	if req.CourseID != nil {
		course, err := s.requireCourse(ctx, *req.CourseID)
		if err != nil {
			return nil, err
		}
		project.CourseID = &course.ID
		project.Course = course
	}

	var advisor *model.Teacher
	if who.IsTeacher() {
		t, err := s.repo.Teacher.GetByUserID(ctx, who.UserID)
		switch {
		case err == nil:
			advisor = t
		case errors.Is(err, gorm.ErrRecordNotFound):
			s.logger.Warn("教师账号未关联教师档案，跳过自动关联", zap.Int64("user_id", who.UserID))
		default:
			return nil, err
		}
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Project.Create(ctx, project); err != nil {
			return err
		}
		if advisor == nil {
			return nil
		}
		return tx.Project.AddTeacherLink(ctx, &model.ProjectTeacher{
			TeacherID: advisor.ID,
			ProjectID: project.ID,
			Role:      model.ProjectRoleAdvisor,
		})
	})
	if err != nil {
		s.logger.Error("创建项目失败", zap.Error(err))
		return nil, err
	}

	resp := toProjectResponse(project)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

// Update 状态改为完成时，提交后将关联学生标记为 formado；级联失败只记录告警
func (s *projectService) Update(ctx context.Context, who dto.Identity, id int64, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := loadProject(ctx, s.repo, who, id, accessManage)
	if err != nil {
		return nil, err
	}

	changed := false
	completed := false

	if req.Name != nil {
		name, err := requireText(*req.Name, "Nome do projeto")
		if err != nil {
			return nil, err
		}
		project.Name = name
		changed = true
	}
	if req.Description != nil {
		desc, err := requireText(*req.Description, "Descrição")
		if err != nil {
			return nil, err
		}
		project.Description = &desc
		changed = true
	}
	if req.Observation != nil {
		project.Observation = optionalText(req.Observation)
		changed = true
	}
	if req.CourseID != nil {
		course, err := s.requireCourse(ctx, *req.CourseID)
		if err != nil {
			return nil, err
		}
		project.CourseID = &course.ID
		project.Course = course
		changed = true
	}
	if req.Status != nil {
		status, ok := normalizeProjectStatus(*req.Status)
		if !ok {
			return nil, ErrInvalidProjectStatus
		}
		project.Status = status
		completed = isCompletedProjectStatus(*req.Status)
		changed = true
	}

	if !changed {
		return nil, ErrNoChanges
	}

	if err := s.repo.Project.Update(ctx, project); err != nil {
		s.logger.Error("更新项目失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	if completed {
		n, err := s.repo.Student.MarkGraduatedByProject(ctx, id)
		if err != nil {
			s.logger.Warn("项目完成后更新学生状态失败", zap.Int64("project_id", id), zap.Error(err))
		} else {
			s.logger.Info("项目完成，学生已标记为 formado", zap.Int64("project_id", id), zap.Int64("students", n))
		}
	}

	resp := toProjectResponse(project)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *projectService) Delete(ctx context.Context, who dto.Identity, id int64) error {
	if _, err := loadProject(ctx, s.repo, who, id, accessManage); err != nil {
		return err
	}
	if err := s.repo.Project.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		s.logger.Error("删除项目失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 教师成员 ──────────────────────

// AddTeachers 以 role 关联教师：已是同一角色时跳过，已是另一角色时冲突
func (s *projectService) AddTeachers(ctx context.Context, who dto.Identity, projectID int64, role string, teacherIDs []int64) error {
	ids := uniqueIDs(teacherIDs)
	if len(ids) == 0 {
		return ErrEmptyIDList
	}
	if _, err := loadProject(ctx, s.repo, who, projectID, accessManage); err != nil {
		return err
	}

	teachers, err := s.repo.Teacher.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(teachers) != len(ids) {
		return ErrTeacherNotFound
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		for _, teacherID := range ids {
			link, err := tx.Project.GetTeacherLink(ctx, projectID, teacherID)
			if err == nil {
				if link.Role != role {
					return ErrTeacherRoleConflict
				}
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := tx.Project.AddTeacherLink(ctx, &model.ProjectTeacher{
				TeacherID: teacherID,
				ProjectID: projectID,
				Role:      role,
			}); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrTeacherRoleConflict
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTeacherRoleConflict) {
			return err
		}
		s.logger.Error("关联教师失败", zap.Int64("project_id", projectID), zap.String("role", role), zap.Error(err))
		return err
	}
	return nil
}

// RemoveTeachers 仅删除该角色的关联
func (s *projectService) RemoveTeachers(ctx context.Context, who dto.Identity, projectID int64, role string, teacherIDs []int64) error {
	ids := uniqueIDs(teacherIDs)
	if len(ids) == 0 {
		return ErrEmptyIDList
	}
	if _, err := loadProject(ctx, s.repo, who, projectID, accessManage); err != nil {
		return err
	}
	n, err := s.repo.Project.RemoveTeacherLinks(ctx, projectID, ids, role)
	if err != nil {
		s.logger.Error("移除教师失败", zap.Int64("project_id", projectID), zap.Error(err))
		return err
	}
	s.logger.Debug("已移除教师关联", zap.Int64("project_id", projectID), zap.String("role", role), zap.Int64("rows", n))
	return nil
}

// ────────────────────── 学生成员 ──────────────────────

// AddStudents 已关联的学生跳过
func (s *projectService) AddStudents(ctx context.Context, who dto.Identity, projectID int64, studentIDs []int64) error {
	ids := uniqueIDs(studentIDs)
	if len(ids) == 0 {
		return ErrEmptyIDList
	}
	if _, err := loadProject(ctx, s.repo, who, projectID, accessManage); err != nil {
		return err
	}

	students, err := s.repo.Student.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(students) != len(ids) {
		return ErrStudentNotFound
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		for _, studentID := range ids {
			if err := tx.Project.AddStudentLink(ctx, &model.ProjectStudent{
				StudentID: studentID,
				ProjectID: projectID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("关联学生失败", zap.Int64("project_id", projectID), zap.Error(err))
		return err
	}
	return nil
}

func (s *projectService) RemoveStudents(ctx context.Context, who dto.Identity, projectID int64, studentIDs []int64) error {
	ids := uniqueIDs(studentIDs)
	if len(ids) == 0 {
		return ErrEmptyIDList
	}
	if _, err := loadProject(ctx, s.repo, who, projectID, accessManage); err != nil {
		return err
	}
	if _, err := s.repo.Project.RemoveStudentLinks(ctx, projectID, ids); err != nil {
		s.logger.Error("移除学生失败", zap.Int64("project_id", projectID), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *projectService) requireCourse(ctx context.Context, id int64) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// uniqueIDs 去重并剔除非正数，保持原顺序
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
