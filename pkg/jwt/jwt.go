package jwt

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/chrono2k/gradmateAPI/config"
)

var (
	ErrTokenMalformed        = errors.New("token 格式错误")
	ErrTokenInvalidSignature = errors.New("token 签名无效")
	ErrTokenExpired          = errors.New("token 已过期")
)

// Claims 自定义 JWT 声明
type Claims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwtv5.RegisteredClaims
}

// Manager Token 签发与校验
type Manager struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewManager 创建 Token 管理器
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		issuer: cfg.Issuer,
	}
}

// GenerateToken 签发 Token（HS256，三段 base64url）
func (m *Manager) GenerateToken(userID int64, username, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    m.issuer,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken 校验签名并解析声明
//
// 段数不为 3 → ErrTokenMalformed；签名不一致 → ErrTokenInvalidSignature；
// 过期 → ErrTokenExpired。签名按 base64url 文本做常量时间比较，
// 任意字符被篡改都会被识别。
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, ErrTokenMalformed
	}

	sig, err := jwtv5.SigningMethodHS256.Sign(parts[0]+"."+parts[1], m.secret)
	if err != nil {
		return nil, ErrTokenInvalidSignature
	}
	expected := base64.RawURLEncoding.EncodeToString(sig)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(parts[2])) != 1 {
		return nil, ErrTokenInvalidSignature
	}

	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		return m.secret, nil
	}, jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		if errors.Is(err, jwtv5.ErrTokenSignatureInvalid) {
			return nil, ErrTokenInvalidSignature
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
