package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/chrono2k/gradmateAPI/config"
	"github.com/chrono2k/gradmateAPI/internal/api/handler"
	"github.com/chrono2k/gradmateAPI/internal/api/middleware"
	"github.com/chrono2k/gradmateAPI/pkg/jwt"
	"github.com/chrono2k/gradmateAPI/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 可为 nil（登录限流降级为进程内实现）
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	enforcer middleware.Enforcer,
	rdb *redis.Client,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(bodyLimit(cfg)))

	// ── 健康检查 / 指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ── 公开路由 ──
	var limiter middleware.SlidingWindow
	if rdb != nil {
		limiter = rdb
	}
	r.POST("/auth/login/",
		middleware.RateLimit(limiter, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow, logger),
		h.Auth.Login,
	)
	r.GET("/course/signature/:filename", h.Course.Signature)

	// ── 需要认证的路由 ──
	authorized := r.Group("")
	authorized.Use(middleware.JWTAuth(jwtMgr, logger))
	authorized.Use(middleware.Authorize(enforcer, logger))
	{
		// 账号
		auth := authorized.Group("/auth")
		{
			auth.GET("/user", h.Auth.CurrentUser)
			auth.GET("/users", h.User.ListUsers)
			auth.POST("/users", h.User.CreateUser)
			auth.PUT("/users/:id", h.User.UpdateAuthority)
			auth.PATCH("/users/:id", h.User.UpdateStatus)
			auth.POST("/users/:id/password", h.User.ResetPassword)
		}

		// 课程
		course := authorized.Group("/course")
		{
			course.GET("/", h.Course.ListCourses)
			course.POST("/", h.Course.CreateCourse)
			course.PUT("/", h.Course.UpdateCourse)
			course.DELETE("/", h.Course.DeleteCourse)
			course.POST("/active", h.Course.ActivateCourse)
			course.POST("/search", h.Course.SearchCourses)
			course.GET("/statistics", h.Course.Statistics)
			course.GET("/:id", h.Course.GetCourse)
		}

		// 教师
		teacher := authorized.Group("/teacher")
		{
			teacher.GET("/", h.Teacher.ListTeachers)
			teacher.POST("/", h.Teacher.CreateTeacher)
			teacher.PUT("/", h.Teacher.UpdateTeacher)
			teacher.DELETE("/", h.Teacher.DeleteTeacher)
			teacher.POST("/active", h.Teacher.ActivateTeacher)
			teacher.POST("/search", h.Teacher.SearchTeachers)
			teacher.GET("/:id", h.Teacher.GetTeacher)
		}

		// 学生
		student := authorized.Group("/student")
		{
			student.GET("/", h.Student.ListStudents)
			student.POST("/", h.Student.CreateStudent)
			student.PUT("/", h.Student.UpdateStudent)
			student.DELETE("/", h.Student.DeleteStudent)
			student.POST("/active", h.Student.ActivateStudent)
			student.POST("/search", h.Student.SearchStudents)
			student.GET("/:id", h.Student.GetStudent)
		}

		// 项目
		project := authorized.Group("/project")
		{
			project.GET("/", h.Project.ListProjects)
			project.POST("/", h.Project.CreateProject)
			project.GET("/statistics", h.Project.Statistics)
			project.GET("/atas", h.DefenseMinutes.ListAllAtas)
			project.GET("/atas/export", h.Export.ExportAtas)

			project.GET("/:id", h.Project.GetProject)
			project.PUT("/:id", h.Project.UpdateProject)
			project.DELETE("/:id", h.Project.DeleteProject)

			project.POST("/:id/teachers", h.Project.AddAdvisors)
			project.DELETE("/:id/teachers", h.Project.RemoveAdvisors)
			project.POST("/:id/guests", h.Project.AddGuests)
			project.DELETE("/:id/guests", h.Project.RemoveGuests)
			project.POST("/:id/students", h.Project.AddStudents)
			project.DELETE("/:id/students", h.Project.RemoveStudents)

			project.POST("/:id/reports", h.Project.CreateReport)
			project.PUT("/:id/reports/:report_id", h.Project.UpdateReport)
			project.DELETE("/:id/reports/:report_id", h.Project.DeleteReport)

			project.GET("/:id/files", h.ProjectFile.ListFiles)
			project.POST("/:id/files", h.ProjectFile.UploadFiles)
			project.DELETE("/:id/files", h.ProjectFile.BulkDeleteFiles)
			project.GET("/:id/files/:file_id/download", h.ProjectFile.DownloadFile)
			project.DELETE("/:id/files/:file_id", h.ProjectFile.DeleteFile)

			project.GET("/:id/atas", h.DefenseMinutes.ListAtas)
			project.POST("/:id/atas", h.DefenseMinutes.CreateAta)
			project.DELETE("/:id/atas/:ata_id", h.DefenseMinutes.DeleteAta)
		}

		// 日历标记
		dates := authorized.Group("/date-status")
		{
			dates.GET("/", h.DateStatus.ListDates)
			dates.POST("/", h.DateStatus.SetDate)
			dates.PUT("/", h.DateStatus.UpdateDate)
			dates.DELETE("/", h.DateStatus.DeleteDate)
			dates.GET("/statistics", h.DateStatus.Statistics)
			dates.GET("/status/:status", h.DateStatus.ByStatus)
			dates.GET("/year/:year", h.DateStatus.Year)
			dates.DELETE("/year/:year", h.DateStatus.ClearYear)
			dates.GET("/year/:year/ics", h.Export.ExportCalendar)
		}
	}

	return r
}

// bodyLimit 请求体上限不小于单个上传文件上限
func bodyLimit(cfg *config.Config) int64 {
	limit := cfg.Server.BodyLimitMB << 20
	if upload := (cfg.Storage.MaxUploadMB + 1) << 20; upload > limit {
		limit = upload
	}
	return limit
}
