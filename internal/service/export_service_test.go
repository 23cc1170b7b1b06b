package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/model"
)

func setupTestExportService() (ExportService, *mockDB) {
	repo, db := newMockRepository()
	return NewExportService(repo, testLogger), db
}

func seedMinutes(db *mockDB, projectID int64, title, result string) {
	m := &model.DefenseMinutes{ID: db.id(), ProjectID: projectID, Title: title, Result: result, CreatedAt: time.Now()}
	db.minutes[m.ID] = m
}

func TestExportService_DefenseMinutes(t *testing.T) {
	svc, db := setupTestExportService()
	p := seedProject(db, "Projeto A")
	seedMinutes(db, p.ID, "Defesa final", model.DefenseResultApproved)
	seedMinutes(db, p.ID, "Qualificação", model.DefenseResultPending)

	buf, filename, err := svc.ExportDefenseMinutes(context.Background(), adminIdentity)
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if !strings.HasPrefix(filename, "atas_") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名不符: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("生成的文件应可被解析: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Atas")
	if err != nil {
		t.Fatalf("应包含 Atas 工作表: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("期望 标题 + 表头 + 2 行数据，实际=%d", len(rows))
	}
	if rows[1][0] != "ID" || rows[2][1] != "Projeto A" {
		t.Errorf("内容不符: header=%v first=%v", rows[1], rows[2])
	}
}

func TestExportService_DefenseMinutes_Visibility(t *testing.T) {
	svc, db := setupTestExportService()
	p := seedProject(db, "Projeto A")
	seedMinutes(db, p.ID, "Defesa", model.DefenseResultApproved)
	_, outsider := seedStudent(db, "ana", "RA001")

	buf, _, err := svc.ExportDefenseMinutes(context.Background(), outsider)
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("生成的文件应可被解析: %v", err)
	}
	defer f.Close()
	rows, _ := f.GetRows("Atas")
	if len(rows) != 2 {
		t.Errorf("不可见项目的纪要不应导出，行数=%d", len(rows))
	}
}

func TestExportService_Calendar(t *testing.T) {
	repo, db := newMockRepository()
	svc := NewExportService(repo, testLogger)
	dates := NewDateStatusService(repo, testLogger)
	ctx := context.Background()
	dates.Set(ctx, &dto.DateStatusRequest{Date: "2024-05-01", Status: 3})
	dates.Set(ctx, &dto.DateStatusRequest{Date: "2023-05-01", Status: 1})

	buf, filename, err := svc.ExportCalendar(ctx, 2024)
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if filename != "calendario_2024.ics" {
		t.Errorf("文件名不符: %s", filename)
	}
	body := buf.String()
	if strings.Count(body, "BEGIN:VEVENT") != 1 {
		t.Errorf("期望 1 个事件，实际内容:\n%s", body)
	}
	if !strings.Contains(body, "20240501") || !strings.Contains(body, "Status 3") {
		t.Errorf("事件内容不符:\n%s", body)
	}
	if len(db.dates) != 2 {
		t.Error("导出不应修改数据")
	}
}

func TestExportService_Calendar_InvalidYear(t *testing.T) {
	svc, _ := setupTestExportService()
	if _, _, err := svc.ExportCalendar(context.Background(), 0); !errors.Is(err, ErrInvalidYear) {
		t.Errorf("期望 ErrInvalidYear，实际: %v", err)
	}
}
