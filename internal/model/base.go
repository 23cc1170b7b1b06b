package model

import "time"

// Timestamps 通用时间戳字段（由数据库默认值与 GORM 自动维护）
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ── 通用状态 ──

const (
	StatusActive   = "ativo"
	StatusInactive = "inativo"
)

// ValidActiveStatus 逻辑删除状态仅允许 ativo / inativo
func ValidActiveStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}
