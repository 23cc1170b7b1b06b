package model

// 账号权限
const (
	AuthorityAdmin   = "admin"
	AuthorityTeacher = "teacher"
	AuthorityStudent = "student"
)

// ValidAuthority 校验权限取值
func ValidAuthority(a string) bool {
	switch a {
	case AuthorityAdmin, AuthorityTeacher, AuthorityStudent:
		return true
	}
	return false
}

// User 登录账号 — 对应 users，只做状态切换，从不物理删除
type User struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"                json:"id"`
	Username     string  `gorm:"type:varchar(255);not null;uniqueIndex"  json:"username"`
	Authority    string  `gorm:"type:varchar(20);not null"               json:"authority"`
	PasswordHash string  `gorm:"type:varchar(255);not null"              json:"-"`
	Status       string  `gorm:"type:varchar(10);not null;default:ativo" json:"status"`
	Name         *string `gorm:"type:varchar(255)"                       json:"name,omitempty"`
	Timestamps
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// IsActive 账号是否可用
func (u *User) IsActive() bool { return u.Status == StatusActive }
