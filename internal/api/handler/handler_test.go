package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/service"
	"github.com/chrono2k/gradmateAPI/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.LoginResponse
	loginErr      error
	currentResult *dto.CurrentUserResponse
	currentErr    error
	lastIdentity  dto.Identity
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.LoginResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) CurrentUser(_ context.Context, who dto.Identity) (*dto.CurrentUserResponse, error) {
	m.lastIdentity = who
	return m.currentResult, m.currentErr
}
func (m *mockAuthService) EnsureAdmin(_ context.Context) error { return nil }

// ── Mock ProjectFileService ──

type mockProjectFileService struct {
	uploadResult []dto.ProjectFileResponse
	uploadErr    error
	uploads      []dto.Upload
	download     *dto.FileDownload
	downloadErr  error
	bulkResult   *dto.BulkDeleteResult
	bulkErr      error
	bulkIDs      []int64
}

func (m *mockProjectFileService) Upload(_ context.Context, _ dto.Identity, _ int64, files []dto.Upload) ([]dto.ProjectFileResponse, error) {
	m.uploads = files
	return m.uploadResult, m.uploadErr
}
func (m *mockProjectFileService) List(_ context.Context, _ dto.Identity, _ int64) ([]dto.ProjectFileResponse, error) {
	return nil, nil
}
func (m *mockProjectFileService) Download(_ context.Context, _ dto.Identity, _, _ int64) (*dto.FileDownload, error) {
	return m.download, m.downloadErr
}
func (m *mockProjectFileService) Delete(_ context.Context, _ dto.Identity, _, _ int64) error {
	return nil
}
func (m *mockProjectFileService) BulkDelete(_ context.Context, _ dto.Identity, _ int64, ids []int64) (*dto.BulkDeleteResult, error) {
	m.bulkIDs = ids
	return m.bulkResult, m.bulkErr
}

// ═══════════════════════════════════════════════════════════
// Helpers
// ═══════════════════════════════════════════════════════════

var teacherIdentity = dto.Identity{UserID: 7, Username: "prof", Role: "teacher"}

// withIdentity 模拟 JWT 中间件注入身份
func withIdentity(who dto.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		SetIdentity(c, who)
		c.Next()
	}
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v, body=%s", err, w.Body.String())
	}
	return resp
}

// ═══════════════════════════════════════════════════════════
// Auth
// ═══════════════════════════════════════════════════════════

func TestLogin_Success(t *testing.T) {
	mock := &mockAuthService{loginResult: &dto.LoginResponse{
		Token: "signed.jwt.token",
		User:  dto.UserResponse{ID: 1, Username: "admin", Authority: "admin", Status: "ativo"},
	}}
	h := NewAuthHandler(mock, zap.NewNop())

	r := gin.New()
	r.POST("/auth/login/", h.Login)

	w := doJSON(r, http.MethodPost, "/auth/login/", dto.LoginRequest{Username: "admin", Password: "123"})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d body=%s", w.Code, w.Body.String())
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if !body.Success || body.Data.Token != "signed.jwt.token" {
		t.Errorf("token 应位于 data.token，实际=%s", w.Body.String())
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock, zap.NewNop())

	r := gin.New()
	r.POST("/auth/login/", h.Login)

	w := doJSON(r, http.MethodPost, "/auth/login/", dto.LoginRequest{Username: "admin", Password: "errada"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际=%d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Success || resp.Code != 11001 {
		t.Errorf("期望业务码 11001，实际=%d", resp.Code)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, zap.NewNop())

	r := gin.New()
	r.POST("/auth/login/", h.Login)

	w := doJSON(r, http.MethodPost, "/auth/login/", map[string]string{"username": "admin"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际=%d", w.Code)
	}
}

func TestCurrentUser_NoIdentity(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, zap.NewNop())

	r := gin.New()
	r.GET("/auth/user", h.CurrentUser)

	w := doJSON(r, http.MethodGet, "/auth/user", nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("期望 403，实际=%d", w.Code)
	}
	if resp := parseResponse(t, w); resp.Message != "Token ausente" {
		t.Errorf("消息不符: %q", resp.Message)
	}
}

func TestCurrentUser_PassesIdentity(t *testing.T) {
	mock := &mockAuthService{currentResult: &dto.CurrentUserResponse{
		UserResponse: dto.UserResponse{ID: 7, Username: "prof", Authority: "teacher"},
	}}
	h := NewAuthHandler(mock, zap.NewNop())

	r := gin.New()
	r.GET("/auth/user", withIdentity(teacherIdentity), h.CurrentUser)

	w := doJSON(r, http.MethodGet, "/auth/user", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	if mock.lastIdentity != teacherIdentity {
		t.Errorf("身份未传递到 service: %+v", mock.lastIdentity)
	}
}

func TestCurrentUser_InternalErrorNotLeaked(t *testing.T) {
	mock := &mockAuthService{currentErr: errors.New("pq: connection refused to 10.0.0.5")}
	h := NewAuthHandler(mock, zap.NewNop())

	r := gin.New()
	r.GET("/auth/user", withIdentity(teacherIdentity), h.CurrentUser)

	w := doJSON(r, http.MethodGet, "/auth/user", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("期望 500，实际=%d", w.Code)
	}
	if strings.Contains(w.Body.String(), "10.0.0.5") {
		t.Errorf("内部错误不应出现在响应中: %s", w.Body.String())
	}
}

func TestMustGetIdentity_WrongType(t *testing.T) {
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		c.Set(IdentityKey, "not-an-identity")
		if _, ok := MustGetIdentity(c); ok {
			t.Error("错误类型的身份不应通过")
		}
	})

	w := doJSON(r, http.MethodGet, "/x", nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("期望 403，实际=%d", w.Code)
	}
	if resp := parseResponse(t, w); resp.Message != "Token inválido" {
		t.Errorf("消息不符: %q", resp.Message)
	}
}

// ═══════════════════════════════════════════════════════════
// Project files
// ═══════════════════════════════════════════════════════════

func fileRouter(mock *mockProjectFileService) *gin.Engine {
	h := NewProjectFileHandler(mock, zap.NewNop())
	r := gin.New()
	g := r.Group("/project/:id", withIdentity(teacherIdentity))
	g.POST("/files", h.UploadFiles)
	g.DELETE("/files", h.BulkDeleteFiles)
	g.GET("/files/:file_id/download", h.DownloadFile)
	return r
}

func TestBulkDeleteFiles_EmptyList(t *testing.T) {
	mock := &mockProjectFileService{bulkErr: service.ErrEmptyFileIDList}
	r := fileRouter(mock)

	w := doJSON(r, http.MethodDelete, "/project/1/files", dto.BulkDeleteFilesRequest{FileIDs: []int64{}})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("期望 422，实际=%d", w.Code)
	}
}

func TestBulkDeleteFiles_PartialResult(t *testing.T) {
	mock := &mockProjectFileService{bulkResult: &dto.BulkDeleteResult{
		Deleted: []int64{1, 2},
		Failed:  []int64{999},
		Errors:  map[int64]string{999: "Arquivo não encontrado"},
	}}
	r := fileRouter(mock)

	w := doJSON(r, http.MethodDelete, "/project/1/files", dto.BulkDeleteFilesRequest{FileIDs: []int64{1, 2, 999}})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	if len(mock.bulkIDs) != 3 {
		t.Errorf("期望转发 3 个 id，实际=%v", mock.bulkIDs)
	}

	var body struct {
		Data struct {
			Deleted []int64           `json:"deleted"`
			Failed  []int64           `json:"failed"`
			Errors  map[string]string `json:"errors"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if len(body.Data.Deleted) != 2 || len(body.Data.Failed) != 1 || body.Data.Failed[0] != 999 {
		t.Errorf("failed 应为 id 数组，实际: %s", w.Body.String())
	}
	if body.Data.Errors["999"] != "Arquivo não encontrado" {
		t.Errorf("errors 不符: %v", body.Data.Errors)
	}
}

func TestDownloadFile_AttachmentHeaders(t *testing.T) {
	cases := []struct {
		filename, want string
	}{
		{"ata.pdf", "attachment; filename*=UTF-8''ata.pdf"},
		{"Relatório final.pdf", "attachment; filename*=UTF-8''Relat%C3%B3rio%20final.pdf"},
		{"a+b=c@d.pdf", "attachment; filename*=UTF-8''a+b%3Dc%40d.pdf"},
	}
	for _, tc := range cases {
		size := int64(5)
		mock := &mockProjectFileService{download: &dto.FileDownload{
			Filename:    tc.filename,
			ContentType: "application/pdf",
			Size:        &size,
			Content:     io.NopCloser(strings.NewReader("%PDF-")),
		}}
		r := fileRouter(mock)

		w := doJSON(r, http.MethodGet, "/project/1/files/3/download", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("期望 200，实际=%d", w.Code)
		}
		if got := w.Header().Get("Content-Disposition"); got != tc.want {
			t.Errorf("%q 的 Content-Disposition 不符: %q", tc.filename, got)
		}
		if got := w.Header().Get("Content-Type"); got != "application/pdf" {
			t.Errorf("Content-Type 不符: %q", got)
		}
		if w.Body.String() != "%PDF-" {
			t.Errorf("内容不符: %q", w.Body.String())
		}
	}
}

func TestDownloadFile_InvalidID(t *testing.T) {
	r := fileRouter(&mockProjectFileService{})

	w := doJSON(r, http.MethodGet, "/project/abc/files/3/download", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际=%d", w.Code)
	}
}

func TestDownloadFile_Forbidden(t *testing.T) {
	r := fileRouter(&mockProjectFileService{downloadErr: service.ErrProjectForbidden})

	w := doJSON(r, http.MethodGet, "/project/1/files/3/download", nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("期望 403，实际=%d", w.Code)
	}
}

func TestUploadFiles_NotMultipart(t *testing.T) {
	r := fileRouter(&mockProjectFileService{})

	w := doJSON(r, http.MethodPost, "/project/1/files", map[string]string{"x": "y"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际=%d", w.Code)
	}
	if resp := parseResponse(t, w); resp.Code != 17002 {
		t.Errorf("期望业务码 17002，实际=%d", resp.Code)
	}
}
