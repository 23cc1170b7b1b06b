package model

// Teacher 教师档案 — 对应 teachers，启用状态存放在关联账号 users.status
type Teacher struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Observation *string `gorm:"type:text"                  json:"observation"`
	Image       *string `gorm:"type:text"                  json:"image"`
	Telephone   *string `gorm:"type:varchar(30)"           json:"telephone"`
	UserID      *int64  `gorm:"uniqueIndex"                json:"user_id"`
	Timestamps

	// 关联
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }
