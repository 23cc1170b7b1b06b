package errors

import (
	"errors"

	"gorm.io/gorm"
)

// Kind 业务错误类别，决定 HTTP 状态码
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindUnprocessable
)

// AppError 携带类别、业务码与面向客户端的提示信息
type AppError struct {
	Kind    Kind
	Code    int
	Message string
}

func (e *AppError) Error() string { return e.Message }

// Is 同一 Code 的 AppError 视为同一错误，便于动态构造的校验错误做匹配
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Kind == e.Kind
}

func newError(kind Kind, code int, msg string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: msg}
}

// Validation 400
func Validation(code int, msg string) *AppError { return newError(KindValidation, code, msg) }

// Unauthorized 401（仅登录失败使用）
func Unauthorized(code int, msg string) *AppError { return newError(KindUnauthorized, code, msg) }

// Forbidden 403
func Forbidden(code int, msg string) *AppError { return newError(KindForbidden, code, msg) }

// NotFound 404
func NotFound(code int, msg string) *AppError { return newError(KindNotFound, code, msg) }

// Conflict 409
func Conflict(code int, msg string) *AppError { return newError(KindConflict, code, msg) }

// Unprocessable 422
func Unprocessable(code int, msg string) *AppError { return newError(KindUnprocessable, code, msg) }

// As 提取 AppError
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound 记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKey 唯一约束冲突（需开启 gorm TranslateError）
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsForeignKeyViolation 外键约束冲突
func IsForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}
