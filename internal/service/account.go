package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/chrono2k/gradmateAPI/internal/model"
	"github.com/chrono2k/gradmateAPI/internal/repository"
)

// ── 教师 / 学生共用的登录账号辅助 ──

// newAccount 以 email 为用户名、默认密码构造账号
func newAccount(email, authority, name, defaultPassword string) (*model.User, error) {
	hash, err := hashPassword(defaultPassword)
	if err != nil {
		return nil, err
	}
	return &model.User{
		Username:     email,
		Authority:    authority,
		PasswordHash: hash,
		Status:       model.StatusActive,
		Name:         &name,
	}, nil
}

// normalizeUsername 用户名不区分大小写，统一以小写存储和查询
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// normalizeEmail 去空白并转小写，至少 3 个字符
func normalizeEmail(email string) (string, error) {
	v, err := requireText(email, "Email")
	if err != nil {
		return "", err
	}
	return normalizeUsername(v), nil
}

// usernameTaken 用户名是否已被占用（excludeUserID 为当前账号）
func usernameTaken(ctx context.Context, repo *repository.Repository, username string, excludeUserID int64) (bool, error) {
	u, err := repo.User.GetByUsername(ctx, normalizeUsername(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.ID != excludeUserID, nil
}

// setAccountStatus 切换关联账号状态，状态一致时视为成功
func setAccountStatus(ctx context.Context, repo *repository.Repository, user *model.User, status string) error {
	if user == nil || user.Status == status {
		return nil
	}
	if err := repo.User.UpdateStatus(ctx, user.ID, status); err != nil {
		return err
	}
	user.Status = status
	return nil
}
