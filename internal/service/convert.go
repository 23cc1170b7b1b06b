package service

import (
	"github.com/chrono2k/gradmateAPI/internal/dto"
	"github.com/chrono2k/gradmateAPI/internal/model"
)

// ── model → dto 转换 ──

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Authority: u.Authority,
		Status:    u.Status,
		Name:      u.Name,
		CreatedAt: dto.FormatTime(u.CreatedAt),
	}
}

func toCourseResponse(c *model.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:                      c.ID,
		Name:                    c.Name,
		Observation:             c.Observation,
		Status:                  c.Status,
		ResponsibleTeacherName:  c.ResponsibleTeacherName,
		ResponsibleSignatureURL: c.ResponsibleSignatureURL,
		CreatedAt:               dto.FormatTime(c.CreatedAt),
		UpdatedAt:               dto.FormatTime(c.UpdatedAt),
	}
}

func toTeacherResponse(t *model.Teacher) dto.TeacherResponse {
	resp := dto.TeacherResponse{
		ID:          t.ID,
		Name:        t.Name,
		Observation: t.Observation,
		Image:       t.Image,
		Telephone:   t.Telephone,
		UserID:      t.UserID,
		CreatedAt:   dto.FormatTime(t.CreatedAt),
		UpdatedAt:   dto.FormatTime(t.UpdatedAt),
	}
	if t.User != nil {
		resp.Email = t.User.Username
		resp.Status = t.User.Status
	}
	return resp
}

func toStudentResponse(s *model.Student) dto.StudentResponse {
	resp := dto.StudentResponse{
		ID:           s.ID,
		Name:         s.Name,
		Registration: s.Registration,
		Observation:  s.Observation,
		Image:        s.Image,
		Telephone:    s.Telephone,
		Status:       s.Status,
		UserID:       s.UserID,
		CreatedAt:    dto.FormatTime(s.CreatedAt),
		UpdatedAt:    dto.FormatTime(s.UpdatedAt),
	}
	if s.User != nil {
		resp.Email = s.User.Username
		resp.UserStatus = s.User.Status
	}
	return resp
}

func toProjectResponse(p *model.Project) dto.ProjectResponse {
	resp := dto.ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CourseID:    p.CourseID,
		Observation: p.Observation,
		Status:      p.Status,
		CreatedAt:   dto.FormatTime(p.CreatedAt),
		UpdatedAt:   dto.FormatTime(p.UpdatedAt),
	}
	if p.Course != nil {
		c := toCourseResponse(p.Course)
		resp.Course = &c
	}
	return resp
}

func toReportResponse(r *model.Report) dto.ReportResponse {
	resp := dto.ReportResponse{
		ID:          r.ID,
		ProjectID:   r.ProjectID,
		Description: r.Description,
		Pendency:    r.Pendency,
		Status:      r.Status,
		NextSteps:   r.NextSteps,
		Local:       r.Local,
		Feedback:    r.Feedback,
		CreatedAt:   dto.FormatTime(r.CreatedAt),
		UpdatedAt:   dto.FormatTime(r.UpdatedAt),
	}
	if r.Teacher != nil {
		t := toTeacherResponse(r.Teacher)
		resp.Teacher = &t
	}
	return resp
}

func toFileResponse(f *model.ProjectFile) dto.ProjectFileResponse {
	return dto.ProjectFileResponse{
		ID:           f.ID,
		ProjectID:    f.ProjectID,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		Size:         f.Size,
		UploadedBy:   f.UploadedBy,
		CreatedAt:    dto.FormatTime(f.CreatedAt),
	}
}

func toDefenseMinutesResponse(m *model.DefenseMinutes) dto.DefenseMinutesResponse {
	resp := dto.DefenseMinutesResponse{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Title:       m.Title,
		Result:      m.Result,
		StudentName: m.StudentName,
		Location:    m.Location,
		StartedAt:   dto.FormatTimePtr(m.StartedAt),
		CreatedBy:   m.CreatedBy,
		CreatedAt:   dto.FormatTime(m.CreatedAt),
	}
	if m.File != nil {
		f := toFileResponse(m.File)
		resp.File = &f
	}
	if m.Project != nil {
		resp.ProjectName = m.Project.Name
	}
	return resp
}
