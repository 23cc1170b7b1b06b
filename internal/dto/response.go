package dto

import "time"

// 响应中的时间统一使用 RFC3339
const timeLayout = time.RFC3339

// FormatTime 格式化时间；零值返回空串
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}

// FormatTimePtr 可空时间格式化
func FormatTimePtr(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format(timeLayout)
	return &s
}
