package service

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/chrono2k/gradmateAPI/config"
	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/model"
)

func init() {
	passwordCost = bcrypt.MinCost
}

var testLogger = zap.NewNop()

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-tests",
			TokenTTL:        time.Hour,
			Issuer:          "gradmate-test",
			DefaultPassword: "fatec",
		},
		Storage: config.StorageConfig{MaxUploadMB: 1},
	}
}

var adminIdentity = dto.Identity{UserID: 9999, Username: "admin", Role: model.AuthorityAdmin}

// ── 数据构造 ──

func seedUser(db *mockDB, username, authority, password string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.User{
		ID:           db.id(),
		Username:     username,
		Authority:    authority,
		PasswordHash: string(hash),
		Status:       model.StatusActive,
		Timestamps:   model.Timestamps{CreatedAt: time.Now(), UpdatedAt: time.Now()},
	}
	db.users[u.ID] = u
	return u
}

func seedTeacher(db *mockDB, name string) (*model.Teacher, dto.Identity) {
	u := seedUser(db, name+"@fatec.sp.gov.br", model.AuthorityTeacher, "fatec")
	t := &model.Teacher{ID: db.id(), Name: name, UserID: &u.ID}
	db.teachers[t.ID] = t
	return t, dto.Identity{UserID: u.ID, Username: u.Username, Role: model.AuthorityTeacher}
}

func seedStudent(db *mockDB, name, registration string) (*model.Student, dto.Identity) {
	u := seedUser(db, name+"@fatec.sp.gov.br", model.AuthorityStudent, "fatec")
	s := &model.Student{
		ID:           db.id(),
		Name:         name,
		Registration: registration,
		Status:       model.StudentStatusStudying,
		UserID:       &u.ID,
	}
	db.students[s.ID] = s
	return s, dto.Identity{UserID: u.ID, Username: u.Username, Role: model.AuthorityStudent}
}

func seedCourse(db *mockDB, name, status string) *model.Course {
	c := &model.Course{
		ID:         db.id(),
		Name:       name,
		Status:     status,
		Timestamps: model.Timestamps{CreatedAt: time.Now(), UpdatedAt: time.Now()},
	}
	db.courses[c.ID] = c
	return c
}

func seedProject(db *mockDB, name string) *model.Project {
	p := &model.Project{ID: db.id(), Name: name, Status: model.ProjectStatusPreProject}
	db.projects[p.ID] = p
	return p
}

func linkTeacher(db *mockDB, projectID, teacherID int64, role string) {
	db.teacherLinks = append(db.teacherLinks, model.ProjectTeacher{
		ID: db.id(), ProjectID: projectID, TeacherID: teacherID, Role: role,
	})
}

func linkStudent(db *mockDB, projectID, studentID int64) {
	db.studentLinks = append(db.studentLinks, model.ProjectStudent{
		ID: db.id(), ProjectID: projectID, StudentID: studentID,
	})
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }
