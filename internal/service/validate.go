package service

import (
	"strings"
	"time"

	"github.com/chrono2k/gradmateAPI/internal/model"
	"github.com/chrono2k/gradmateAPI/internal/repository"
	"github.com/chrono2k/gradmateAPI/pkg/textutil"
)

const (
	minTextLen = 3
	dateLayout = "2006-01-02"
)

// requireText 去除首尾空白后至少 3 个字符
func requireText(value, field string) (string, error) {
	v := strings.TrimSpace(value)
	if textutil.RuneLen(v) < minTextLen {
		return "", tooShort(field)
	}
	return v, nil
}

// optionalText 空白字符串归一为 nil
func optionalText(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

// parseDate 解析 YYYY-MM-DD
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// listStatus 列表过滤参数：空值默认 ativo，all 表示不过滤
func listStatus(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", model.StatusActive:
		return model.StatusActive, nil
	case model.StatusInactive:
		return model.StatusInactive, nil
	case "all":
		return "", nil
	}
	return "", ErrInvalidStatus
}

// buildSearchFilter 名称优先，否则按日期区间
func buildSearchFilter(req searchInput) (repository.SearchFilter, error) {
	f := repository.SearchFilter{Name: strings.TrimSpace(req.name)}
	if f.Name != "" {
		return f, nil
	}
	if req.startDate != "" {
		t, err := parseDate(req.startDate)
		if err != nil {
			return f, err
		}
		f.From = &t
	}
	if req.endDate != "" {
		t, err := parseDate(req.endDate)
		if err != nil {
			return f, err
		}
		f.To = &t
	}
	return f, nil
}

type searchInput struct {
	name, startDate, endDate string
}

// isCompletedProjectStatus "Finalizado" / "Concluído" 忽略大小写与重音
func isCompletedProjectStatus(status string) bool {
	switch textutil.Fold(status) {
	case "finalizado", "concluido":
		return true
	}
	return false
}

// normalizeProjectStatus 将输入映射到规范取值，未知返回 false
func normalizeProjectStatus(status string) (string, bool) {
	folded := textutil.Fold(status)
	if folded == "concluido" {
		return model.ProjectStatusFinished, true
	}
	for _, s := range model.ProjectStatuses {
		if textutil.Fold(s) == folded {
			return s, true
		}
	}
	return "", false
}
