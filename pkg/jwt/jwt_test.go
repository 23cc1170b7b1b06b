package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/chrono2k/gradmateAPI/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret: "test-secret-key-for-unit-testing-2026",
		TokenTTL:  time.Hour,
		Issuer:    "gradmate",
	})
}

func TestGenerateAndParseToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateToken(42, "prof@fatec.sp.gov.br", "teacher")
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("token 应由三段组成: %s", token)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("期望 UserID=42，实际=%d", claims.UserID)
	}
	if claims.Username != "prof@fatec.sp.gov.br" {
		t.Errorf("期望 Username=prof@fatec.sp.gov.br，实际=%s", claims.Username)
	}
	if claims.Role != "teacher" {
		t.Errorf("期望 Role=teacher，实际=%s", claims.Role)
	}
	if claims.Subject != "42" {
		t.Errorf("期望 Subject=42，实际=%s", claims.Subject)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 59*time.Minute || ttl > 61*time.Minute {
		t.Errorf("TTL 期望约 1h，实际=%v", ttl)
	}
}

func TestParseToken_TamperedCharacter(t *testing.T) {
	m := newTestManager()
	token, _ := m.GenerateToken(1, "admin", "admin")

	// 逐段篡改：header、claims、signature 各改一个字符
	dots := []int{0, strings.Index(token, ".") + 1, strings.LastIndex(token, ".") + 1}
	for _, pos := range dots {
		b := []byte(token)
		if b[pos] == 'A' {
			b[pos] = 'B'
		} else {
			b[pos] = 'A'
		}
		_, err := m.ParseToken(string(b))
		if !errors.Is(err, ErrTokenInvalidSignature) {
			t.Errorf("篡改位置 %d 期望 ErrTokenInvalidSignature，实际: %v", pos, err)
		}
	}

	// 签名最后一个字符
	b := []byte(token)
	last := len(b) - 1
	if b[last] == 'x' {
		b[last] = 'y'
	} else {
		b[last] = 'x'
	}
	if _, err := m.ParseToken(string(b)); !errors.Is(err, ErrTokenInvalidSignature) {
		t.Errorf("篡改签名末位期望 ErrTokenInvalidSignature，实际: %v", err)
	}
}

func TestParseToken_Malformed(t *testing.T) {
	m := newTestManager()

	cases := []string{"", "abc", "a.b", "a.b.c.d", "only.one"}
	for _, tc := range cases {
		if _, err := m.ParseToken(tc); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("%q 期望 ErrTokenMalformed，实际: %v", tc, err)
		}
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager()
	m2 := NewManager(&config.AuthConfig{
		JWTSecret: "different-secret-key-0123456789",
		TokenTTL:  time.Hour,
	})

	token, _ := m1.GenerateToken(1, "admin", "admin")
	_, err := m2.ParseToken(token)
	if !errors.Is(err, ErrTokenInvalidSignature) {
		t.Errorf("不同密钥签名的 token 期望 ErrTokenInvalidSignature，实际: %v", err)
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	m := NewManager(&config.AuthConfig{
		JWTSecret: "test-secret-key-for-unit-testing-2026",
		TokenTTL:  -time.Minute,
	})

	token, _ := m.GenerateToken(1, "admin", "admin")

	_, err := m.ParseToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}
