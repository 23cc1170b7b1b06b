package model

// 学生学业状态
const (
	StudentStatusStudying  = "cursando"
	StudentStatusGraduated = "formado"
)

// Student 学生档案 — 对应 students
type Student struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"                   json:"id"`
	Name         string  `gorm:"type:varchar(255);not null"                 json:"name"`
	Registration string  `gorm:"type:varchar(255);not null;uniqueIndex"     json:"registration"`
	Observation  *string `gorm:"type:text"                                  json:"observation"`
	Image        *string `gorm:"type:text"                                  json:"image"`
	Telephone    *string `gorm:"type:varchar(30)"                           json:"telephone"`
	Status       string  `gorm:"type:varchar(10);not null;default:cursando" json:"status"`
	UserID       *int64  `gorm:"uniqueIndex"                                json:"user_id"`
	Timestamps

	// 关联
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }
