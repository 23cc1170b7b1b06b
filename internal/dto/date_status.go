package dto

// ── 日历标记 DTO ──

// DateStatusRequest 设置某日标记（新建或覆盖）
type DateStatusRequest struct {
	Date   string `json:"date"   binding:"required"`
	Status int    `json:"status" binding:"required"`
}

// DateRequest 按日期删除
type DateRequest struct {
	Date string `json:"date" binding:"required"`
}

// DateStatusQuery 列表 / 统计的年份过滤
type DateStatusQuery struct {
	Year int `form:"year" binding:"omitempty,min=1900,max=9999"`
}

// DateStatusResponse 单条标记
type DateStatusResponse struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	Status int    `json:"status"`
}

// DateStatusStatistics 标记统计
type DateStatusStatistics struct {
	Total   int64 `json:"total"`
	Status1 int64 `json:"status_1"`
	Status2 int64 `json:"status_2"`
	Status3 int64 `json:"status_3"`
	Status4 int64 `json:"status_4"`
	Status5 int64 `json:"status_5"`
	Status6 int64 `json:"status_6"`
}

// ClearYearResult 清空年份结果
type ClearYearResult struct {
	Year    int   `json:"year"`
	Deleted int64 `json:"deleted"`
}
