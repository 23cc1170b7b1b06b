// Package storage 文件二进制内容的存取（本地磁盘或 S3 兼容对象存储）
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/chrono2k/gradmateAPI/config"
)

var (
	ErrNotFound   = errors.New("arquivo não encontrado")
	ErrInvalidKey = errors.New("nome de arquivo inválido")
)

// Store 二进制存储接口，key 为以 / 分隔的相对路径
type Store interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// Stores 按用途区分的两个存储空间
type Stores struct {
	Files      Store // 项目附件，key = {project_id}/{stored_name}
	Signatures Store // 课程负责人签名，key = stored_name
}

var safeNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// SafeName 单段文件名校验：仅允许字母数字、点、下划线、连字符，且不得包含 ".."
func SafeName(name string) bool {
	if name == "" || len(name) > 255 {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	return safeNamePattern.MatchString(name)
}

// ValidKey 多段 key 逐段校验
func ValidKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") {
		return false
	}
	for _, seg := range strings.Split(key, "/") {
		if !SafeName(seg) {
			return false
		}
	}
	return true
}

// NewStores 按配置创建存储
func NewStores(ctx context.Context, cfg *config.StorageConfig) (*Stores, error) {
	switch cfg.Driver {
	case "", "local":
		files, err := NewLocal(cfg.UploadDir)
		if err != nil {
			return nil, err
		}
		signatures, err := NewLocal(cfg.SignatureDir)
		if err != nil {
			return nil, err
		}
		return &Stores{Files: files, Signatures: signatures}, nil
	case "s3":
		client, err := NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("初始化 S3 客户端失败: %w", err)
		}
		return &Stores{
			Files:      NewS3(client, cfg.S3.Bucket, cfg.S3.UploadPrefix),
			Signatures: NewS3(client, cfg.S3.Bucket, cfg.S3.SignaturePrefix),
		}, nil
	default:
		return nil, fmt.Errorf("未知的存储驱动: %s", cfg.Driver)
	}
}
