package dto

import "github.com/chrono2k/gradmateAPI/internal/model"

// Identity 由 Token 解析出的调用方身份，随请求显式传入 service
type Identity struct {
	UserID   int64
	Username string
	Role     string
}

// IsAdmin 是否管理员
func (i Identity) IsAdmin() bool { return i.Role == model.AuthorityAdmin }

// IsTeacher 是否教师账号
func (i Identity) IsTeacher() bool { return i.Role == model.AuthorityTeacher }

// Upload 上传文件的统一抽象（JSON 请求无文件时为 nil）
type Upload struct {
	Filename string
	Size     int64
	Content  []byte
}

// IDRequest 以请求体携带 id 的操作（删除、恢复）
type IDRequest struct {
	ID int64 `json:"id" binding:"required,min=1"`
}

// SearchRequest 名称或创建日期区间搜索
type SearchRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// StatusQuery 列表状态过滤：ativo | inativo | all
type StatusQuery struct {
	Status string `form:"status"`
}
