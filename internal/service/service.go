package service

import (
	"go.uber.org/zap"

	"github.com/chrono2k/gradmateAPI/config"
	"github.com/chrono2k/gradmateAPI/internal/repository"
	"github.com/chrono2k/gradmateAPI/pkg/jwt"
	"github.com/chrono2k/gradmateAPI/pkg/storage"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth           AuthService
	User           UserService
	Course         CourseService
	Teacher        TeacherService
	Student        StudentService
	Project        ProjectService
	Report         ReportService
	ProjectFile    ProjectFileService
	DefenseMinutes DefenseMinutesService
	DateStatus     DateStatusService
	Export         ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	stores *storage.Stores,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:           NewAuthService(cfg, repo, jwtMgr, logger),
		User:           NewUserService(cfg, repo, logger),
		Course:         NewCourseService(repo, stores.Signatures, logger),
		Teacher:        NewTeacherService(cfg, repo, logger),
		Student:        NewStudentService(cfg, repo, logger),
		Project:        NewProjectService(repo, logger),
		Report:         NewReportService(repo, logger),
		ProjectFile:    NewProjectFileService(cfg, repo, stores.Files, logger),
		DefenseMinutes: NewDefenseMinutesService(cfg, repo, stores.Files, logger),
		DateStatus:     NewDateStatusService(repo, logger),
		Export:         NewExportService(repo, logger),
	}
}
