package service

import (
	"context"
	"errors"
	"testing"

	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/model"
)

func setupTestTeacherService() (TeacherService, *mockDB) {
	repo, db := newMockRepository()
	return NewTeacherService(testConfig(), repo, testLogger), db
}

func TestTeacherService_Create_CreatesAccount(t *testing.T) {
	svc, db := setupTestTeacherService()

	result, err := svc.Create(context.Background(), &dto.CreateTeacherRequest{
		Name:      "Marcos Silva",
		Email:     " Marcos@FATEC.sp.gov.br ",
		Telephone: strPtr("  "),
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Email != "marcos@fatec.sp.gov.br" || result.Status != model.StatusActive {
		t.Errorf("结果不符: %+v", result)
	}
	if result.Telephone != nil {
		t.Error("空白电话应归一为 nil")
	}
	if result.UserID == nil {
		t.Fatal("应关联登录账号")
	}
	u := db.users[*result.UserID]
	if u.Authority != model.AuthorityTeacher || !verifyPassword("fatec", u.PasswordHash) {
		t.Error("账号应为 teacher 且使用默认密码")
	}
}

func TestTeacherService_Create_DuplicateEmail(t *testing.T) {
	svc, db := setupTestTeacherService()
	seedTeacher(db, "marcos")

	_, err := svc.Create(context.Background(), &dto.CreateTeacherRequest{
		Name: "Outro Marcos", Email: "marcos@fatec.sp.gov.br",
	})
	if !errors.Is(err, ErrTeacherEmailExists) {
		t.Errorf("期望 ErrTeacherEmailExists，实际: %v", err)
	}
}

func TestTeacherService_Create_ShortName(t *testing.T) {
	svc, _ := setupTestTeacherService()

	_, err := svc.Create(context.Background(), &dto.CreateTeacherRequest{Name: "Al", Email: "al@fatec.br"})
	if !errors.Is(err, ErrTextTooShort) {
		t.Errorf("期望 ErrTextTooShort，实际: %v", err)
	}
}

func TestTeacherService_Update(t *testing.T) {
	svc, db := setupTestTeacherService()
	teacher, _ := seedTeacher(db, "marcos")
	ctx := context.Background()

	if _, err := svc.Update(ctx, &dto.UpdateTeacherRequest{ID: teacher.ID}); !errors.Is(err, ErrNoChanges) {
		t.Errorf("期望 ErrNoChanges，实际: %v", err)
	}

	result, err := svc.Update(ctx, &dto.UpdateTeacherRequest{
		ID:    teacher.ID,
		Name:  strPtr("Marcos Souza"),
		Email: strPtr("msouza@fatec.sp.gov.br"),
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Name != "Marcos Souza" || result.Email != "msouza@fatec.sp.gov.br" {
		t.Errorf("结果不符: %+v", result)
	}
	if db.users[*teacher.UserID].Username != "msouza@fatec.sp.gov.br" {
		t.Error("账号用户名应同步更新")
	}
}

func TestTeacherService_DeactivateActivate(t *testing.T) {
	svc, db := setupTestTeacherService()
	teacher, _ := seedTeacher(db, "marcos")
	ctx := context.Background()

	if err := svc.Deactivate(ctx, teacher.ID); err != nil {
		t.Fatalf("Deactivate 应成功: %v", err)
	}
	if db.users[*teacher.UserID].Status != model.StatusInactive {
		t.Fatal("账号应为 inativo")
	}

	active, _ := svc.List(ctx, "")
	if len(active) != 0 {
		t.Errorf("停用后默认列表应为空，实际=%d", len(active))
	}

	for i := 0; i < 2; i++ {
		if err := svc.Activate(ctx, teacher.ID); err != nil {
			t.Fatalf("第 %d 次 Activate 应成功: %v", i+1, err)
		}
	}
	if db.users[*teacher.UserID].Status != model.StatusActive {
		t.Error("账号应为 ativo")
	}
}

func TestTeacherService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestTeacherService()

	if _, err := svc.GetByID(context.Background(), 404); !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("期望 ErrTeacherNotFound，实际: %v", err)
	}
}
