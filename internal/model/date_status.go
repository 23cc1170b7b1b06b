package model

import "time"

// DateStatus 日历日期标记 — 对应 date_status，每个日期至多一条
type DateStatus struct {
	ID     int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Date   time.Time `gorm:"type:date;not null"       json:"date"`
	Status int       `gorm:"type:smallint;not null"   json:"status"`
	Timestamps
}

// TableName 指定表名
func (DateStatus) TableName() string { return "date_status" }

// 标记取值范围
const (
	DateStatusMin = 1
	DateStatusMax = 6
)
