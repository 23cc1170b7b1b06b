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

// DateStatusService 日历日期标记业务接口
type DateStatusService interface {
	Set(ctx context.Context, req *dto.DateStatusRequest) (*dto.DateStatusResponse, error)
	Update(ctx context.Context, req *dto.DateStatusRequest) (*dto.DateStatusResponse, error)
	Delete(ctx context.Context, date string) error
	List(ctx context.Context, year int) ([]dto.DateStatusResponse, error)
	Year(ctx context.Context, year int) (map[string]int, error)
	ClearYear(ctx context.Context, year int, confirm bool) (*dto.ClearYearResult, error)
	Statistics(ctx context.Context, year int) (*dto.DateStatusStatistics, error)
	ByStatus(ctx context.Context, status int) ([]dto.DateStatusResponse, error)
}

type dateStatusService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDateStatusService 创建 DateStatusService 实例
func NewDateStatusService(repo *repository.Repository, logger *zap.Logger) DateStatusService {
	return &dateStatusService{repo: repo, logger: logger}
}

// ────────────────────── 写入 ──────────────────────

// Set 新建或覆盖某日标记
func (s *dateStatusService) Set(ctx context.Context, req *dto.DateStatusRequest) (*dto.DateStatusResponse, error) {
	ds, err := s.parse(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DateStatus.Upsert(ctx, ds); err != nil {
		s.logger.Error("保存日期标记失败", zap.String("date", req.Date), zap.Error(err))
		return nil, err
	}
	resp := toDateStatusResponse(ds)
	return &resp, nil
}

// Update 仅修改已存在的标记
func (s *dateStatusService) Update(ctx context.Context, req *dto.DateStatusRequest) (*dto.DateStatusResponse, error) {
	ds, err := s.parse(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.DateStatus.GetByDate(ctx, ds.Date); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDateNotFound
		}
		return nil, err
	}
	if err := s.repo.DateStatus.Upsert(ctx, ds); err != nil {
		s.logger.Error("更新日期标记失败", zap.String("date", req.Date), zap.Error(err))
		return nil, err
	}
	resp := toDateStatusResponse(ds)
	return &resp, nil
}

func (s *dateStatusService) Delete(ctx context.Context, date string) error {
	d, err := parseDate(date)
	if err != nil {
		return err
	}
	n, err := s.repo.DateStatus.DeleteByDate(ctx, d)
	if err != nil {
		s.logger.Error("删除日期标记失败", zap.String("date", date), zap.Error(err))
		return err
	}
	if n == 0 {
		return ErrDateNotFound
	}
	return nil
}

// ClearYear 清空整年标记，必须显式确认
func (s *dateStatusService) ClearYear(ctx context.Context, year int, confirm bool) (*dto.ClearYearResult, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	if !confirm {
		return nil, ErrClearNotConfirmed
	}
	n, err := s.repo.DateStatus.DeleteYear(ctx, year)
	if err != nil {
		s.logger.Error("清空年份标记失败", zap.Int("year", year), zap.Error(err))
		return nil, err
	}
	s.logger.Info("已清空年份标记", zap.Int("year", year), zap.Int64("deleted", n))
	return &dto.ClearYearResult{Year: year, Deleted: n}, nil
}

// ────────────────────── 查询 ──────────────────────

// List year 为 0 时返回全部
func (s *dateStatusService) List(ctx context.Context, year int) ([]dto.DateStatusResponse, error) {
	if year != 0 {
		if err := validateYear(year); err != nil {
			return nil, err
		}
	}
	list, err := s.repo.DateStatus.List(ctx, year)
	if err != nil {
		s.logger.Error("查询日期标记失败", zap.Error(err))
		return nil, err
	}
	return toDateStatusResponses(list), nil
}

// Year 返回 {"YYYY-MM-DD": status}
func (s *dateStatusService) Year(ctx context.Context, year int) (map[string]int, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	list, err := s.repo.DateStatus.List(ctx, year)
	if err != nil {
		s.logger.Error("查询年份标记失败", zap.Int("year", year), zap.Error(err))
		return nil, err
	}
	result := make(map[string]int, len(list))
	for i := range list {
		result[list[i].Date.Format(dateLayout)] = list[i].Status
	}
	return result, nil
}

func (s *dateStatusService) Statistics(ctx context.Context, year int) (*dto.DateStatusStatistics, error) {
	if year != 0 {
		if err := validateYear(year); err != nil {
			return nil, err
		}
	}
	counts, err := s.repo.DateStatus.CountByStatus(ctx, year)
	if err != nil {
		s.logger.Error("日期标记统计失败", zap.Error(err))
		return nil, err
	}

	stats := &dto.DateStatusStatistics{
		Status1: counts[1],
		Status2: counts[2],
		Status3: counts[3],
		Status4: counts[4],
		Status5: counts[5],
		Status6: counts[6],
	}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

func (s *dateStatusService) ByStatus(ctx context.Context, status int) ([]dto.DateStatusResponse, error) {
	if status < model.DateStatusMin || status > model.DateStatusMax {
		return nil, ErrInvalidDateStatus
	}
	list, err := s.repo.DateStatus.ListByStatus(ctx, status)
	if err != nil {
		s.logger.Error("按状态查询日期标记失败", zap.Int("status", status), zap.Error(err))
		return nil, err
	}
	return toDateStatusResponses(list), nil
}

// ── 内部辅助方法 ──

func (s *dateStatusService) parse(req *dto.DateStatusRequest) (*model.DateStatus, error) {
	d, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if req.Status < model.DateStatusMin || req.Status > model.DateStatusMax {
		return nil, ErrInvalidDateStatus
	}
	return &model.DateStatus{Date: d, Status: req.Status}, nil
}

func validateYear(year int) error {
	if year < 1900 || year > 9999 {
		return ErrInvalidYear
	}
	return nil
}

func toDateStatusResponse(ds *model.DateStatus) dto.DateStatusResponse {
	return dto.DateStatusResponse{
		ID:     ds.ID,
		Date:   ds.Date.Format(dateLayout),
		Status: ds.Status,
	}
}

func toDateStatusResponses(list []model.DateStatus) []dto.DateStatusResponse {
	result := make([]dto.DateStatusResponse, 0, len(list))
	for i := range list {
		result = append(result, toDateStatusResponse(&list[i]))
	}
	return result
}
