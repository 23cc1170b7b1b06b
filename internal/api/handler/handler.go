package handler

import (
	"go.uber.org/zap"

	"github.com/chrono2k/gradmateAPI/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth           *AuthHandler
	User           *UserHandler
	Course         *CourseHandler
	Teacher        *TeacherHandler
	Student        *StudentHandler
	Project        *ProjectHandler
	ProjectFile    *ProjectFileHandler
	DefenseMinutes *DefenseMinutesHandler
	DateStatus     *DateStatusHandler
	Export         *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:           NewAuthHandler(svc.Auth, logger),
		User:           NewUserHandler(svc.User, logger),
		Course:         NewCourseHandler(svc.Course, logger),
		Teacher:        NewTeacherHandler(svc.Teacher, logger),
		Student:        NewStudentHandler(svc.Student, logger),
		Project:        NewProjectHandler(svc.Project, svc.Report, logger),
		ProjectFile:    NewProjectFileHandler(svc.ProjectFile, logger),
		DefenseMinutes: NewDefenseMinutesHandler(svc.DefenseMinutes, logger),
		DateStatus:     NewDateStatusHandler(svc.DateStatus, logger),
		Export:         NewExportHandler(svc.Export, logger),
	}
}
