package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/chrono2k/gradmateAPI/config"
	"github.com/chrono2k/gradmateAPI/internal/api/handler"
	"github.com/chrono2k/gradmateAPI/internal/authz"
	"github.com/chrono2k/gradmateAPI/internal/service"
	"github.com/chrono2k/gradmateAPI/pkg/jwt"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{BodyLimitMB: 2},
		Auth: config.AuthConfig{
			JWTSecret:       "router-test-secret-2026",
			TokenTTL:        time.Hour,
			Issuer:          "gradmate",
			LoginRateLimit:  5,
			LoginRateWindow: time.Minute,
		},
		Storage: config.StorageConfig{MaxUploadMB: 10},
	}
}

// setupRouter 使用内嵌策略与空 service；只覆盖在调用 service 之前结束的路径
func setupRouter(t *testing.T) (*jwt.Manager, http.Handler) {
	t.Helper()
	cfg := testConfig()
	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
		t.Fatalf("创建 enforcer 失败: %v", err)
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	h := handler.NewHandler(&service.Service{}, zap.NewNop())
	return jwtMgr, Setup(cfg, h, jwtMgr, enforcer, nil, zap.NewNop())
}

func request(t *testing.T, r http.Handler, jwtMgr *jwt.Manager, role, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if role != "" {
		token, err := jwtMgr.GenerateToken(1, role, role)
		if err != nil {
			t.Fatalf("生成 Token 失败: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	jwtMgr, r := setupRouter(t)
	if w := request(t, r, jwtMgr, "", http.MethodGet, "/health"); w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	jwtMgr, r := setupRouter(t)
	for _, path := range []string{"/project/", "/course/", "/date-status/", "/auth/user"} {
		if w := request(t, r, jwtMgr, "", http.MethodGet, path); w.Code != http.StatusForbidden {
			t.Errorf("%s 期望 403，实际=%d", path, w.Code)
		}
	}
}

func TestRolePolicy(t *testing.T) {
	jwtMgr, r := setupRouter(t)

	denied := []struct {
		role, method, path string
	}{
		{"student", http.MethodDelete, "/project/1"},
		{"student", http.MethodPost, "/project/1/atas"},
		{"student", http.MethodPost, "/date-status/"},
		{"teacher", http.MethodDelete, "/project/1/files"},
		{"teacher", http.MethodGet, "/project/atas/export"},
		{"teacher", http.MethodGet, "/auth/users"},
		{"teacher", http.MethodDelete, "/course/"},
	}
	for _, tc := range denied {
		w := request(t, r, jwtMgr, tc.role, tc.method, tc.path)
		if w.Code != http.StatusForbidden || !strings.Contains(w.Body.String(), "Acesso negado") {
			t.Errorf("%s %s %s 应被拒绝，实际=%d %s", tc.role, tc.method, tc.path, w.Code, w.Body.String())
		}
	}
}

// 通过授权后在参数校验处返回 400，证明请求已到达 handler
func TestRolePolicy_AllowedReachesHandler(t *testing.T) {
	jwtMgr, r := setupRouter(t)

	allowed := []struct {
		role, method, path string
	}{
		{"student", http.MethodGet, "/project/abc"},
		{"student", http.MethodGet, "/project/abc/files/1/download"},
		{"student", http.MethodGet, "/date-status/year/abc/ics"},
		{"teacher", http.MethodDelete, "/project/abc/files/1"},
		{"admin", http.MethodDelete, "/date-status/year/abc"},
	}
	for _, tc := range allowed {
		w := request(t, r, jwtMgr, tc.role, tc.method, tc.path)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s %s %s 期望 400，实际=%d %s", tc.role, tc.method, tc.path, w.Code, w.Body.String())
		}
	}
}

func TestBodyLimit_AtLeastUploadLimit(t *testing.T) {
	cfg := testConfig()
	if got, want := bodyLimit(cfg), int64(11<<20); got != want {
		t.Errorf("bodyLimit=%d，期望 %d", got, want)
	}

	cfg.Server.BodyLimitMB = 50
	if got, want := bodyLimit(cfg), int64(50<<20); got != want {
		t.Errorf("bodyLimit=%d，期望 %d", got, want)
	}
}
