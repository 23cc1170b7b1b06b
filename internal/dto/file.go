package dto

import "io"

// ── 项目附件 DTO ──

// ProjectFileResponse 附件元数据
type ProjectFileResponse struct {
	ID           int64   `json:"id"`
	ProjectID    int64   `json:"project_id"`
	OriginalName string  `json:"original_name"`
	MimeType     *string `json:"mime_type"`
	Size         *int64  `json:"size"`
	UploadedBy   *int64  `json:"uploaded_by"`
	CreatedAt    string  `json:"created_at"`
}

// BulkDeleteFilesRequest 批量删除附件
type BulkDeleteFilesRequest struct {
	FileIDs []int64 `json:"file_ids"`
}

// BulkDeleteResult 批量删除结果，逐项独立；errors 记录失败 id 对应的原因
type BulkDeleteResult struct {
	Deleted []int64          `json:"deleted"`
	Failed  []int64          `json:"failed"`
	Errors  map[int64]string `json:"errors,omitempty"`
}

// FileDownload 下载内容，调用方负责关闭 Content
type FileDownload struct {
	Filename    string
	ContentType string
	Size        *int64
	Content     io.ReadCloser
}
