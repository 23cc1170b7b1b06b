package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/chrono2k/gradmateAPI/internal/model"
	"github.com/chrono2k/gradmateAPI/internal/repository"
	"github.com/chrono2k/gradmateAPI/pkg/storage"
)

// ── 内存数据集 ──
//
// 所有 mock repository 共享同一个 mockDB，以便关联查询（可见性、级联）与真实实现一致。
// 读取返回副本，写入时保存副本。

type mockDB struct {
	nextID int64

	users        map[int64]*model.User
	courses      map[int64]*model.Course
	teachers     map[int64]*model.Teacher
	students     map[int64]*model.Student
	projects     map[int64]*model.Project
	teacherLinks []model.ProjectTeacher
	studentLinks []model.ProjectStudent
	reports      map[int64]*model.Report
	dates        map[string]*model.DateStatus
	files        map[int64]*model.ProjectFile
	minutes      map[int64]*model.DefenseMinutes

	failGraduation bool
}

func newMockDB() *mockDB {
	return &mockDB{
		users:    make(map[int64]*model.User),
		courses:  make(map[int64]*model.Course),
		teachers: make(map[int64]*model.Teacher),
		students: make(map[int64]*model.Student),
		projects: make(map[int64]*model.Project),
		reports:  make(map[int64]*model.Report),
		dates:    make(map[string]*model.DateStatus),
		files:    make(map[int64]*model.ProjectFile),
		minutes:  make(map[int64]*model.DefenseMinutes),
	}
}

func (db *mockDB) id() int64 {
	db.nextID++
	return db.nextID
}

// newMockRepository 组装基于 mockDB 的 Repository 聚合（db 为 nil，Transaction 直接执行）
func newMockRepository() (*repository.Repository, *mockDB) {
	db := newMockDB()
	return &repository.Repository{
		User:           &mockUserRepo{db},
		Course:         &mockCourseRepo{db},
		Teacher:        &mockTeacherRepo{db},
		Student:        &mockStudentRepo{db},
		Project:        &mockProjectRepo{db},
		Report:         &mockReportRepo{db},
		DateStatus:     &mockDateStatusRepo{db},
		ProjectFile:    &mockProjectFileRepo{db},
		DefenseMinutes: &mockDefenseMinutesRepo{db},
	}, db
}

// ── Mock UserRepository ──

type mockUserRepo struct{ db *mockDB }

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.db.users {
		if strings.EqualFold(u.Username, user.Username) {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = m.db.id()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	m.db.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u, ok := m.db.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.db.users {
		if strings.EqualFold(u.Username, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	for _, u := range m.db.users {
		if strings.EqualFold(u.Username, user.Username) && u.ID != user.ID {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *user
	m.db.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	u, ok := m.db.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Status = status
	return nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.db.users))
	for _, u := range m.db.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct{ db *mockDB }

func (m *mockCourseRepo) activeNameTaken(name string, excludeID int64) bool {
	for _, c := range m.db.courses {
		if c.ID != excludeID && c.Status == model.StatusActive && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.Status == model.StatusActive && m.activeNameTaken(course.Name, 0) {
		return gorm.ErrDuplicatedKey
	}
	course.ID = m.db.id()
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	cp := *course
	m.db.courses[course.ID] = &cp
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id int64) (*model.Course, error) {
	if c, ok := m.db.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	if course.Status == model.StatusActive && m.activeNameTaken(course.Name, course.ID) {
		return gorm.ErrDuplicatedKey
	}
	cp := *course
	m.db.courses[course.ID] = &cp
	return nil
}

func (m *mockCourseRepo) List(_ context.Context, status string) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.db.courses {
		if status == "" || c.Status == status {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockCourseRepo) Search(_ context.Context, f repository.SearchFilter) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.db.courses {
		if matchSearch(c.Name, c.CreatedAt, f) {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockCourseRepo) ExistsActiveName(_ context.Context, name string, excludeID int64) (bool, error) {
	return m.activeNameTaken(name, excludeID), nil
}

func (m *mockCourseRepo) Statistics(_ context.Context) (*repository.CourseStats, error) {
	stats := &repository.CourseStats{}
	for _, c := range m.db.courses {
		stats.Total++
		if c.Status == model.StatusActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
		if stats.LastCreatedAt == nil || c.CreatedAt.After(*stats.LastCreatedAt) {
			t := c.CreatedAt
			stats.LastCreatedAt = &t
		}
	}
	return stats, nil
}

func matchSearch(name string, createdAt time.Time, f repository.SearchFilter) bool {
	if f.Name != "" {
		return strings.Contains(strings.ToLower(name), strings.ToLower(f.Name))
	}
	if f.From != nil && createdAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !createdAt.Before(f.To.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct{ db *mockDB }

func (m *mockTeacherRepo) load(t *model.Teacher) model.Teacher {
	cp := *t
	if t.UserID != nil {
		if u, ok := m.db.users[*t.UserID]; ok {
			uc := *u
			cp.User = &uc
		}
	}
	return cp
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	teacher.ID = m.db.id()
	teacher.CreatedAt = time.Now()
	teacher.UpdatedAt = teacher.CreatedAt
	cp := *teacher
	cp.User = nil
	m.db.teachers[teacher.ID] = &cp
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id int64) (*model.Teacher, error) {
	if t, ok := m.db.teachers[id]; ok {
		cp := m.load(t)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) GetByUserID(_ context.Context, userID int64) (*model.Teacher, error) {
	for _, t := range m.db.teachers {
		if t.UserID != nil && *t.UserID == userID {
			cp := m.load(t)
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	cp := *teacher
	cp.User = nil
	m.db.teachers[teacher.ID] = &cp
	return nil
}

func (m *mockTeacherRepo) List(_ context.Context, status string) ([]model.Teacher, error) {
	var result []model.Teacher
	for _, t := range m.db.teachers {
		cp := m.load(t)
		if status != "" && (cp.User == nil || cp.User.Status != status) {
			continue
		}
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockTeacherRepo) Search(_ context.Context, f repository.SearchFilter) ([]model.Teacher, error) {
	var result []model.Teacher
	for _, t := range m.db.teachers {
		if matchSearch(t.Name, t.CreatedAt, f) {
			result = append(result, m.load(t))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockTeacherRepo) ListByIDs(_ context.Context, ids []int64) ([]model.Teacher, error) {
	var result []model.Teacher
	for _, id := range ids {
		if t, ok := m.db.teachers[id]; ok {
			result = append(result, m.load(t))
		}
	}
	return result, nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct{ db *mockDB }

func (m *mockStudentRepo) load(s *model.Student) model.Student {
	cp := *s
	if s.UserID != nil {
		if u, ok := m.db.users[*s.UserID]; ok {
			uc := *u
			cp.User = &uc
		}
	}
	return cp
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	for _, s := range m.db.students {
		if s.Registration == student.Registration {
			return gorm.ErrDuplicatedKey
		}
	}
	student.ID = m.db.id()
	student.CreatedAt = time.Now()
	student.UpdatedAt = student.CreatedAt
	cp := *student
	cp.User = nil
	m.db.students[student.ID] = &cp
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id int64) (*model.Student, error) {
	if s, ok := m.db.students[id]; ok {
		cp := m.load(s)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByUserID(_ context.Context, userID int64) (*model.Student, error) {
	for _, s := range m.db.students {
		if s.UserID != nil && *s.UserID == userID {
			cp := m.load(s)
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByRegistration(_ context.Context, registration string) (*model.Student, error) {
	for _, s := range m.db.students {
		if s.Registration == registration {
			cp := m.load(s)
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	for _, s := range m.db.students {
		if s.Registration == student.Registration && s.ID != student.ID {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *student
	cp.User = nil
	m.db.students[student.ID] = &cp
	return nil
}

func (m *mockStudentRepo) List(_ context.Context, status string) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.db.students {
		cp := m.load(s)
		if status != "" && (cp.User == nil || cp.User.Status != status) {
			continue
		}
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockStudentRepo) Search(_ context.Context, f repository.SearchFilter) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.db.students {
		if matchSearch(s.Name, s.CreatedAt, f) {
			result = append(result, m.load(s))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockStudentRepo) ListByIDs(_ context.Context, ids []int64) ([]model.Student, error) {
	var result []model.Student
	for _, id := range ids {
		if s, ok := m.db.students[id]; ok {
			result = append(result, m.load(s))
		}
	}
	return result, nil
}

func (m *mockStudentRepo) MarkGraduatedByProject(_ context.Context, projectID int64) (int64, error) {
	if m.db.failGraduation {
		return 0, errors.New("falha simulada")
	}
	var n int64
	for _, link := range m.db.studentLinks {
		if link.ProjectID != projectID {
			continue
		}
		if s, ok := m.db.students[link.StudentID]; ok {
			s.Status = model.StudentStatusGraduated
			n++
		}
	}
	return n, nil
}

// ── Mock ProjectRepository ──

type mockProjectRepo struct{ db *mockDB }

func (m *mockProjectRepo) visible(projectID, userID int64) bool {
	if userID == 0 {
		return true
	}
	for _, l := range m.db.teacherLinks {
		if t, ok := m.db.teachers[l.TeacherID]; ok && l.ProjectID == projectID && t.UserID != nil && *t.UserID == userID {
			return true
		}
	}
	for _, l := range m.db.studentLinks {
		if s, ok := m.db.students[l.StudentID]; ok && l.ProjectID == projectID && s.UserID != nil && *s.UserID == userID {
			return true
		}
	}
	return false
}

func (m *mockProjectRepo) Create(_ context.Context, project *model.Project) error {
	project.ID = m.db.id()
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	cp := *project
	cp.Course = nil
	m.db.projects[project.ID] = &cp
	return nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id int64) (*model.Project, error) {
	if p, ok := m.db.projects[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) Update(_ context.Context, project *model.Project) error {
	cp := *project
	cp.Course = nil
	m.db.projects[project.ID] = &cp
	return nil
}

func (m *mockProjectRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.db.projects[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.db.projects, id)
	return nil
}

func (m *mockProjectRepo) List(_ context.Context, f repository.ProjectFilter) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.db.projects {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
			continue
		}
		if !m.visible(p.ID, f.ViewerUserID) {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockProjectRepo) CountByStatus(_ context.Context, viewerUserID int64) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, p := range m.db.projects {
		if m.visible(p.ID, viewerUserID) {
			counts[p.Status]++
		}
	}
	return counts, nil
}

func (m *mockProjectRepo) ListTeacherLinks(_ context.Context, projectID int64) ([]model.ProjectTeacher, error) {
	tr := &mockTeacherRepo{m.db}
	var result []model.ProjectTeacher
	for _, l := range m.db.teacherLinks {
		if l.ProjectID != projectID {
			continue
		}
		if t, ok := m.db.teachers[l.TeacherID]; ok {
			tc := tr.load(t)
			l.Teacher = &tc
		}
		result = append(result, l)
	}
	return result, nil
}

func (m *mockProjectRepo) GetTeacherLink(_ context.Context, projectID, teacherID int64) (*model.ProjectTeacher, error) {
	for _, l := range m.db.teacherLinks {
		if l.ProjectID == projectID && l.TeacherID == teacherID {
			cp := l
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) AddTeacherLink(_ context.Context, link *model.ProjectTeacher) error {
	for _, l := range m.db.teacherLinks {
		if l.ProjectID == link.ProjectID && l.TeacherID == link.TeacherID {
			return gorm.ErrDuplicatedKey
		}
	}
	link.ID = m.db.id()
	m.db.teacherLinks = append(m.db.teacherLinks, *link)
	return nil
}

func (m *mockProjectRepo) RemoveTeacherLinks(_ context.Context, projectID int64, teacherIDs []int64, role string) (int64, error) {
	var n int64
	kept := m.db.teacherLinks[:0]
	for _, l := range m.db.teacherLinks {
		if l.ProjectID == projectID && l.Role == role && containsID(teacherIDs, l.TeacherID) {
			n++
			continue
		}
		kept = append(kept, l)
	}
	m.db.teacherLinks = kept
	return n, nil
}

func (m *mockProjectRepo) UserHasTeacherRole(_ context.Context, projectID, userID int64, role string) (bool, error) {
	for _, l := range m.db.teacherLinks {
		if l.ProjectID != projectID || (role != "" && l.Role != role) {
			continue
		}
		if t, ok := m.db.teachers[l.TeacherID]; ok && t.UserID != nil && *t.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockProjectRepo) ListStudents(_ context.Context, projectID int64) ([]model.Student, error) {
	sr := &mockStudentRepo{m.db}
	var result []model.Student
	for _, l := range m.db.studentLinks {
		if l.ProjectID != projectID {
			continue
		}
		if s, ok := m.db.students[l.StudentID]; ok {
			result = append(result, sr.load(s))
		}
	}
	return result, nil
}

func (m *mockProjectRepo) AddStudentLink(_ context.Context, link *model.ProjectStudent) error {
	for _, l := range m.db.studentLinks {
		if l.ProjectID == link.ProjectID && l.StudentID == link.StudentID {
			return nil
		}
	}
	link.ID = m.db.id()
	m.db.studentLinks = append(m.db.studentLinks, *link)
	return nil
}

func (m *mockProjectRepo) RemoveStudentLinks(_ context.Context, projectID int64, studentIDs []int64) (int64, error) {
	var n int64
	kept := m.db.studentLinks[:0]
	for _, l := range m.db.studentLinks {
		if l.ProjectID == projectID && containsID(studentIDs, l.StudentID) {
			n++
			continue
		}
		kept = append(kept, l)
	}
	m.db.studentLinks = kept
	return n, nil
}

func (m *mockProjectRepo) UserIsStudent(_ context.Context, projectID, userID int64) (bool, error) {
	for _, l := range m.db.studentLinks {
		if s, ok := m.db.students[l.StudentID]; ok && l.ProjectID == projectID && s.UserID != nil && *s.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// ── Mock ReportRepository ──

type mockReportRepo struct{ db *mockDB }

func (m *mockReportRepo) Create(_ context.Context, report *model.Report) error {
	report.ID = m.db.id()
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt
	cp := *report
	cp.Teacher = nil
	m.db.reports[report.ID] = &cp
	return nil
}

func (m *mockReportRepo) GetByID(_ context.Context, id int64) (*model.Report, error) {
	if r, ok := m.db.reports[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReportRepo) Update(_ context.Context, report *model.Report) error {
	cp := *report
	cp.Teacher = nil
	m.db.reports[report.ID] = &cp
	return nil
}

func (m *mockReportRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.db.reports[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.db.reports, id)
	return nil
}

func (m *mockReportRepo) ListByProject(_ context.Context, projectID int64) ([]model.Report, error) {
	var result []model.Report
	for _, r := range m.db.reports {
		if r.ProjectID == projectID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ── Mock DateStatusRepository ──

type mockDateStatusRepo struct{ db *mockDB }

func (m *mockDateStatusRepo) Upsert(_ context.Context, ds *model.DateStatus) error {
	key := ds.Date.Format(dateLayout)
	if existing, ok := m.db.dates[key]; ok {
		existing.Status = ds.Status
		existing.UpdatedAt = time.Now()
		ds.ID = existing.ID
		return nil
	}
	ds.ID = m.db.id()
	cp := *ds
	m.db.dates[key] = &cp
	return nil
}

func (m *mockDateStatusRepo) GetByDate(_ context.Context, date time.Time) (*model.DateStatus, error) {
	if ds, ok := m.db.dates[date.Format(dateLayout)]; ok {
		cp := *ds
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDateStatusRepo) DeleteByDate(_ context.Context, date time.Time) (int64, error) {
	key := date.Format(dateLayout)
	if _, ok := m.db.dates[key]; !ok {
		return 0, nil
	}
	delete(m.db.dates, key)
	return 1, nil
}

func (m *mockDateStatusRepo) List(_ context.Context, year int) ([]model.DateStatus, error) {
	var result []model.DateStatus
	for _, ds := range m.db.dates {
		if year == 0 || ds.Date.Year() == year {
			result = append(result, *ds)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockDateStatusRepo) ListByStatus(_ context.Context, status int) ([]model.DateStatus, error) {
	var result []model.DateStatus
	for _, ds := range m.db.dates {
		if ds.Status == status {
			result = append(result, *ds)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockDateStatusRepo) DeleteYear(_ context.Context, year int) (int64, error) {
	var n int64
	for key, ds := range m.db.dates {
		if ds.Date.Year() == year {
			delete(m.db.dates, key)
			n++
		}
	}
	return n, nil
}

func (m *mockDateStatusRepo) CountByStatus(_ context.Context, year int) (map[int]int64, error) {
	counts := make(map[int]int64)
	for _, ds := range m.db.dates {
		if year == 0 || ds.Date.Year() == year {
			counts[ds.Status]++
		}
	}
	return counts, nil
}

// ── Mock ProjectFileRepository ──

type mockProjectFileRepo struct{ db *mockDB }

func (m *mockProjectFileRepo) Create(_ context.Context, file *model.ProjectFile) error {
	file.ID = m.db.id()
	file.CreatedAt = time.Now()
	cp := *file
	m.db.files[file.ID] = &cp
	return nil
}

func (m *mockProjectFileRepo) GetByID(_ context.Context, id int64) (*model.ProjectFile, error) {
	if f, ok := m.db.files[id]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectFileRepo) ListByProject(_ context.Context, projectID int64) ([]model.ProjectFile, error) {
	var result []model.ProjectFile
	for _, f := range m.db.files {
		if f.ProjectID == projectID {
			result = append(result, *f)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockProjectFileRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.db.files[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.db.files, id)
	return nil
}

// ── Mock DefenseMinutesRepository ──

type mockDefenseMinutesRepo struct{ db *mockDB }

func (m *mockDefenseMinutesRepo) load(dm *model.DefenseMinutes) model.DefenseMinutes {
	cp := *dm
	if dm.FileID != nil {
		if f, ok := m.db.files[*dm.FileID]; ok {
			fc := *f
			cp.File = &fc
		}
	}
	if p, ok := m.db.projects[dm.ProjectID]; ok {
		pc := *p
		cp.Project = &pc
	}
	return cp
}

func (m *mockDefenseMinutesRepo) Create(_ context.Context, dm *model.DefenseMinutes) error {
	dm.ID = m.db.id()
	dm.CreatedAt = time.Now()
	cp := *dm
	cp.File = nil
	cp.Project = nil
	m.db.minutes[dm.ID] = &cp
	return nil
}

func (m *mockDefenseMinutesRepo) GetByID(_ context.Context, id int64) (*model.DefenseMinutes, error) {
	if dm, ok := m.db.minutes[id]; ok {
		cp := m.load(dm)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDefenseMinutesRepo) ListByProject(_ context.Context, projectID int64) ([]model.DefenseMinutes, error) {
	var result []model.DefenseMinutes
	for _, dm := range m.db.minutes {
		if dm.ProjectID == projectID {
			result = append(result, m.load(dm))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockDefenseMinutesRepo) ListVisible(_ context.Context, viewerUserID int64) ([]model.DefenseMinutes, error) {
	pr := &mockProjectRepo{m.db}
	var result []model.DefenseMinutes
	for _, dm := range m.db.minutes {
		if pr.visible(dm.ProjectID, viewerUserID) {
			result = append(result, m.load(dm))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockDefenseMinutesRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.db.minutes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.db.minutes, id)
	return nil
}

// ── 内存 Store ──

type memStore struct {
	mu         sync.Mutex
	objects    map[string][]byte
	failSave   bool
	failDelete bool
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (s *memStore) Save(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if s.failSave {
		return errors.New("disco cheio")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *memStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	if s.failDelete {
		return errors.New("falha simulada")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
