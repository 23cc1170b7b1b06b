package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/model"
	"github.com/chrono2k/gradmateAPI/internal/repository"
)

// ── 项目数据级权限 ──
//
// 管理（修改、删除、成员、报告删除、答辩纪要、单个附件删除）：管理员，或以 advisor 身份关联项目的教师。
// 查看（详情、附件、答辩纪要列表）：管理员，或任意角色关联的教师，或关联的学生。

type accessLevel int

const (
	accessView accessLevel = iota + 1
	accessManage
)

// canManageProject 管理权限判定
func canManageProject(ctx context.Context, repo *repository.Repository, who dto.Identity, projectID int64) (bool, error) {
	if who.IsAdmin() {
		return true, nil
	}
	if !who.IsTeacher() {
		return false, nil
	}
	return repo.Project.UserHasTeacherRole(ctx, projectID, who.UserID, model.ProjectRoleAdvisor)
}

// canViewProject 查看权限判定
func canViewProject(ctx context.Context, repo *repository.Repository, who dto.Identity, projectID int64) (bool, error) {
	switch who.Role {
	case model.AuthorityAdmin:
		return true, nil
	case model.AuthorityTeacher:
		return repo.Project.UserHasTeacherRole(ctx, projectID, who.UserID, "")
	case model.AuthorityStudent:
		return repo.Project.UserIsStudent(ctx, projectID, who.UserID)
	}
	return false, nil
}

// loadProject 加载项目并校验权限：不存在 → ErrProjectNotFound，无权限 → ErrProjectForbidden
func loadProject(ctx context.Context, repo *repository.Repository, who dto.Identity, projectID int64, level accessLevel) (*model.Project, error) {
	project, err := repo.Project.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	var allowed bool
	switch level {
	case accessManage:
		allowed, err = canManageProject(ctx, repo, who, projectID)
	default:
		allowed, err = canViewProject(ctx, repo, who, projectID)
	}
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrProjectForbidden
	}
	return project, nil
}

// viewerFilter 管理员不过滤，其余角色按参与关系过滤
func viewerFilter(who dto.Identity) int64 {
	if who.IsAdmin() {
		return 0
	}
	return who.UserID
}
