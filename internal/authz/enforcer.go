// Package authz 基于 Casbin 的路由级 RBAC
//
// 角色层级 admin ⊃ teacher ⊃ student。请求以 (角色, gin 路由模板, HTTP 方法)
// 三元组参与判定；项目归属等数据级约束由 service 层负责。
package authz

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"

	"github.com/chrono2k/gradmateAPI/config"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

// Enforcer Casbin SyncedEnforcer 的封装
type Enforcer struct {
	enforcer *casbin.SyncedEnforcer
}

// NewEnforcer 创建授权器；未配置或文件不存在时使用内嵌的模型与策略
func NewEnforcer(cfg *config.AuthzConfig) (*Enforcer, error) {
	var (
		m   model.Model
		err error
	)
	if cfg != nil && cfg.ModelPath != "" && fileExists(cfg.ModelPath) {
		m, err = model.NewModelFromFile(cfg.ModelPath)
	} else {
		m, err = model.NewModelFromString(embeddedModel)
	}
	if err != nil {
		return nil, fmt.Errorf("加载 casbin 模型失败: %w", err)
	}

	var enforcer *casbin.SyncedEnforcer
	if cfg != nil && cfg.PolicyPath != "" && fileExists(cfg.PolicyPath) {
		enforcer, err = casbin.NewSyncedEnforcer(m, fileadapter.NewAdapter(cfg.PolicyPath))
	} else {
		enforcer, err = casbin.NewSyncedEnforcer(m)
		if err == nil {
			err = loadEmbeddedPolicy(enforcer, embeddedPolicy)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("创建 casbin enforcer 失败: %w", err)
	}

	return &Enforcer{enforcer: enforcer}, nil
}

// loadEmbeddedPolicy 逐行解析 CSV 策略（# 开头为注释）
func loadEmbeddedPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		switch parts[0] {
		case "p":
			if len(parts) != 4 {
				return fmt.Errorf("策略格式错误: %s", line)
			}
			if _, err := enforcer.AddPolicy(parts[1], parts[2], parts[3]); err != nil {
				return fmt.Errorf("添加策略失败 %v: %w", parts[1:], err)
			}
		case "g":
			if len(parts) != 3 {
				return fmt.Errorf("角色继承格式错误: %s", line)
			}
			if _, err := enforcer.AddGroupingPolicy(parts[1], parts[2]); err != nil {
				return fmt.Errorf("添加角色继承失败 %v: %w", parts[1:], err)
			}
		default:
			return fmt.Errorf("未知的策略类型: %s", parts[0])
		}
	}
	return nil
}

// Enforce 判定角色能否以 method 访问路由模板 route（如 /project/:id）
func (e *Enforcer) Enforce(role, route, method string) (bool, error) {
	start := time.Now()
	allowed, err := e.enforcer.Enforce(role, route, method)
	if err != nil {
		return false, fmt.Errorf("授权判定失败: %w", err)
	}
	recordDecision(role, route, method, allowed, time.Since(start))
	return allowed, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
