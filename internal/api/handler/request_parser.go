package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chrono2k/gradmateAPI/internal/dto"
)

// multipart 表单在内存中缓冲的上限，超出部分落临时文件
const multipartMemory = 8 << 20

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// readUpload 读取单个上传文件的全部内容
func readUpload(fh *multipart.FileHeader) (*dto.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("打开上传文件失败: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件失败: %w", err)
	}
	return &dto.Upload{Filename: fh.Filename, Size: fh.Size, Content: content}, nil
}

// formUploads 按字段名顺序收集上传文件
func formUploads(c *gin.Context, fields ...string) ([]dto.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	var uploads []dto.Upload
	for _, field := range fields {
		for _, fh := range form.File[field] {
			up, err := readUpload(fh)
			if err != nil {
				return nil, err
			}
			uploads = append(uploads, *up)
		}
	}
	return uploads, nil
}

// formUpload 单个可选文件字段
func formUpload(c *gin.Context, field string) (*dto.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return readUpload(fh)
}

// formString 字段存在时返回指针，不存在返回 nil
func formString(c *gin.Context, field string) *string {
	v, ok := c.GetPostForm(field)
	if !ok {
		return nil
	}
	return &v
}

func formInt64(c *gin.Context, field string) (*int64, error) {
	v := formString(c, field)
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(*v), 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ── 课程请求（JSON 或 multipart）──

type courseJSON struct {
	ID                     int64   `json:"id"`
	Name                   *string `json:"name"`
	Observation            *string `json:"observation"`
	Status                 *string `json:"status"`
	ResponsibleTeacherName *string `json:"responsible_teacher_name"`
}

func parseCourseRequest(c *gin.Context) (*dto.UpdateCourseRequest, error) {
	req := &dto.UpdateCourseRequest{}
	if !isMultipart(c) {
		var body courseJSON
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, err
		}
		req.ID = body.ID
		req.Name = body.Name
		req.Observation = body.Observation
		req.Status = body.Status
		req.ResponsibleTeacherName = body.ResponsibleTeacherName
		return req, nil
	}

	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		return nil, err
	}
	id, err := formInt64(c, "id")
	if err != nil {
		return nil, err
	}
	if id != nil {
		req.ID = *id
	}
	req.Name = formString(c, "name")
	req.Observation = formString(c, "observation")
	req.Status = formString(c, "status")
	req.ResponsibleTeacherName = formString(c, "responsible_teacher_name")
	if req.Signature, err = formUpload(c, "signature"); err != nil {
		return nil, err
	}
	return req, nil
}

// ── 答辩纪要请求（JSON 或 multipart）──

type defenseMinutesJSON struct {
	Title       string  `json:"title"`
	Result      string  `json:"result"`
	StudentName *string `json:"student_name"`
	Location    *string `json:"location"`
	StartedAt   *string `json:"started_at"`
	FileID      *int64  `json:"file_id"`
}

func parseDefenseMinutesRequest(c *gin.Context) (*dto.CreateDefenseMinutesRequest, error) {
	if !isMultipart(c) {
		var body defenseMinutesJSON
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, err
		}
		return &dto.CreateDefenseMinutesRequest{
			Title:       body.Title,
			Result:      body.Result,
			StudentName: body.StudentName,
			Location:    body.Location,
			StartedAt:   body.StartedAt,
			FileID:      body.FileID,
		}, nil
	}

	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		return nil, err
	}
	fileID, err := formInt64(c, "file_id")
	if err != nil {
		return nil, err
	}
	file, err := formUpload(c, "file")
	if err != nil {
		return nil, err
	}
	return &dto.CreateDefenseMinutesRequest{
		Title:       c.PostForm("title"),
		Result:      c.PostForm("result"),
		StudentName: formString(c, "student_name"),
		Location:    formString(c, "location"),
		StartedAt:   formString(c, "started_at"),
		FileID:      fileID,
		File:        file,
	}, nil
}

// ── 下载响应 ──

// attachmentHeaders 设置下载响应头，文件名按 RFC 5987 编码
func attachmentHeaders(c *gin.Context, filename string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodeExtValue(filename))
}

// encodeExtValue 对 attr-char 以外的字节做百分号编码，空格为 %20
func encodeExtValue(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if isAttrChar(ch) {
			b.WriteByte(ch)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[ch>>4])
		b.WriteByte(hex[ch&0x0f])
	}
	return b.String()
}

func isAttrChar(ch byte) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", ch) >= 0
}
