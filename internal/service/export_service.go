package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/repository"
)

// ErrExportGenerateFail 生成文件失败（按内部错误处理）
var ErrExportGenerateFail = errors.New("生成导出文件失败")

// 导出文件的 Content-Type
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportService 导出业务接口
//
// 导出内容以 bytes.Buffer 返回，由 Handler 设置响应头后写出。
type ExportService interface {
	// ExportDefenseMinutes 调用方可见的答辩纪要导出为 Excel
	ExportDefenseMinutes(ctx context.Context, who dto.Identity) (*bytes.Buffer, string, error)
	// ExportCalendar 某年的日期标记导出为 iCalendar，每个日期一个全天事件
	ExportCalendar(ctx context.Context, year int) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportDefenseMinutes — 答辩纪要 Excel
// ═══════════════════════════════════════════════════════════
//
// 单个 Sheet "Atas"，首行标题，第二行表头，之后每条纪要一行。

var atasHeader = []string{"ID", "Projeto", "Título", "Aluno", "Resultado", "Local", "Início", "Arquivo", "Criado em"}

func (s *exportService) ExportDefenseMinutes(ctx context.Context, who dto.Identity) (*bytes.Buffer, string, error) {
	list, err := s.repo.DefenseMinutes.ListVisible(ctx, viewerFilter(who))
	if err != nil {
		s.logger.Error("查询答辩纪要失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Atas"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	widths := []float64{8, 32, 40, 28, 14, 24, 20, 32, 20}
	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Atas de defesa %s", time.Now().Format("02/01/2006")))
	f.MergeCell(sheetName, "A1", cell(colName(len(atasHeader)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	for i, h := range atasHeader {
		f.SetCellValue(sheetName, cell(colName(i), row), h)
	}
	f.SetCellStyle(sheetName, cell("A", row), cell(colName(len(atasHeader)-1), row), headerStyle)

	// 数据行
	row = 3
	for i := range list {
		m := toDefenseMinutesResponse(&list[i])
		values := []any{
			m.ID,
			m.ProjectName,
			m.Title,
			deref(m.StudentName),
			m.Result,
			deref(m.Location),
			formatLocal(list[i].StartedAt),
			"",
			list[i].CreatedAt.Format("02/01/2006 15:04"),
		}
		if m.File != nil {
			values[7] = m.File.OriginalName
		}
		for c, v := range values {
			f.SetCellValue(sheetName, cell(colName(c), row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("atas_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportCalendar — 日期标记 iCalendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportCalendar(ctx context.Context, year int) (*bytes.Buffer, string, error) {
	if err := validateYear(year); err != nil {
		return nil, "", err
	}
	list, err := s.repo.DateStatus.List(ctx, year)
	if err != nil {
		s.logger.Error("查询年份标记失败", zap.Int("year", year), zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//gradmateAPI//date-status//PT")
	cal.SetXWRCalName(fmt.Sprintf("Calendário %d", year))

	stamp := time.Now().UTC()
	for i := range list {
		ds := &list[i]
		day := ds.Date.Format(dateLayout)

		event := cal.AddEvent(fmt.Sprintf("date-status-%s@gradmate", day))
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(ds.Date)
		event.SetAllDayEndAt(ds.Date.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("Status %d", ds.Status))
		event.SetDescription(fmt.Sprintf("%s: status %d", day, ds.Status))
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, fmt.Sprintf("calendario_%d.ics", year), nil
}

// ── 辅助函数 ──

// colName 0 起始的列序号转列名
func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func formatLocal(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006 15:04")
}
