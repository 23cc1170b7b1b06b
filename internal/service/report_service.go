package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/model"
	"github.com/chrono2k/gradmateAPI/internal/repository"
)

// ReportService 进度报告业务接口，所有操作需要项目管理权限
type ReportService interface {
	Create(ctx context.Context, who dto.Identity, projectID int64, req *dto.CreateReportRequest) (*dto.ReportResponse, error)
	Update(ctx context.Context, who dto.Identity, projectID, reportID int64, req *dto.UpdateReportRequest) (*dto.ReportResponse, error)
	Delete(ctx context.Context, who dto.Identity, projectID, reportID int64) error
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// Create 报告教师取调用方关联的教师档案，没有档案时为空
func (s *reportService) Create(ctx context.Context, who dto.Identity, projectID int64, req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	if _, err := loadProject(ctx, s.repo, who, projectID, accessManage); err != nil {
		return nil, err
	}

	report := &model.Report{
		ProjectID:   projectID,
		Description: optionalText(req.Description),
		Pendency:    optionalText(req.Pendency),
		Status:      model.ReportStatusPending,
		NextSteps:   optionalText(req.NextSteps),
		Local:       optionalText(req.Local),
		Feedback:    optionalText(req.Feedback),
	}
	if req.Status != nil {
		status, err := reportStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		report.Status = status
	}

	teacher, err := s.repo.Teacher.GetByUserID(ctx, who.UserID)
	switch {
	case err == nil:
		report.TeacherID = &teacher.ID
		report.Teacher = teacher
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	if err := s.repo.Report.Create(ctx, report); err != nil {
		s.logger.Error("创建报告失败", zap.Int64("project_id", projectID), zap.Error(err))
		return nil, err
	}

	resp := toReportResponse(report)
	return &resp, nil
}

func (s *reportService) Update(ctx context.Context, who dto.Identity, projectID, reportID int64, req *dto.UpdateReportRequest) (*dto.ReportResponse, error) {
	if _, err := loadProject(ctx, s.repo, who, projectID, accessManage); err != nil {
		return nil, err
	}
	report, err := s.getReport(ctx, projectID, reportID)
	if err != nil {
		return nil, err
	}

	changed := false
	apply := func(dst **string, src *string) {
		if src != nil {
			*dst = optionalText(src)
			changed = true
		}
	}
	apply(&report.Description, req.Description)
	apply(&report.Pendency, req.Pendency)
	apply(&report.NextSteps, req.NextSteps)
	apply(&report.Local, req.Local)
	apply(&report.Feedback, req.Feedback)

	if req.Status != nil {
		status, err := reportStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		report.Status = status
		changed = true
	}

	if !changed {
		return nil, ErrNoChanges
	}

	if err := s.repo.Report.Update(ctx, report); err != nil {
		s.logger.Error("更新报告失败", zap.Int64("id", reportID), zap.Error(err))
		return nil, err
	}

	resp := toReportResponse(report)
	return &resp, nil
}

func (s *reportService) Delete(ctx context.Context, who dto.Identity, projectID, reportID int64) error {
	if _, err := loadProject(ctx, s.repo, who, projectID, accessManage); err != nil {
		return err
	}
	if _, err := s.getReport(ctx, projectID, reportID); err != nil {
		return err
	}
	if err := s.repo.Report.Delete(ctx, reportID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportNotFound
		}
		s.logger.Error("删除报告失败", zap.Int64("id", reportID), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

// getReport 报告不属于该项目时同样视为不存在
func (s *reportService) getReport(ctx context.Context, projectID, reportID int64) (*model.Report, error) {
	report, err := s.repo.Report.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	if report.ProjectID != projectID {
		return nil, ErrReportNotFound
	}
	return report, nil
}

func reportStatus(s string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case model.ReportStatusPending, model.ReportStatusDone:
		return v, nil
	}
	return "", ErrInvalidReportStatus
}
