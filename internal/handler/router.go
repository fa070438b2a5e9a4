package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/intellixel001/suvashpanel/internal/credential"
	"github.com/intellixel001/suvashpanel/internal/middleware"
	"github.com/intellixel001/suvashpanel/internal/service"
	"github.com/intellixel001/suvashpanel/internal/store"
)

// Routes carries everything the dashboard routes need.
type Routes struct {
	Credentials credential.Store
	Session     *store.SessionStore
	Tasks       *store.TaskStore
	Auth        *service.AuthService
	Exams       *service.ExamService
	Questions   *service.QuestionService
	Packages    *service.PackageService
	TaskService *service.TaskService
	Export      *service.ExportService
	Metrics     *service.MetricsService
	Views       *service.Views
	Logger      *zap.Logger
}

// Register mounts the health, metrics and /api routes on r.
func Register(r gin.IRouter, deps Routes) {
	if deps.Views == nil {
		deps.Views = service.NewViews()
	}
	metrics := NewMetricsHandler(deps.Metrics, deps.Credentials, deps.Logger)
	auth := NewAuthHandler(deps.Auth, deps.Session, deps.Credentials, deps.Logger)
	tasks := NewTaskHandler(deps.Tasks, deps.TaskService, deps.Views)
	exams := NewExamHandler(deps.Exams, deps.Export, deps.Views)
	questions := NewQuestionHandler(deps.Questions)
	packages := NewPackageHandler(deps.Packages, deps.Views)

	r.GET("/health", metrics.Health)
	r.GET("/ready", metrics.Ready)
	if deps.Metrics != nil {
		r.GET("/metrics", metrics.Prometheus)
	}

	api := r.Group("/api")
	api.POST("/login", auth.Login)
	api.POST("/logout", auth.Logout)
	api.GET("/session", auth.Session)
	api.POST("/session/refresh", auth.RefreshSession)

	secured := api.Group("")
	secured.Use(middleware.RequireSession(deps.Credentials, deps.Session, deps.Logger))
	manage := middleware.RBAC(service.CanManageExams)
	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.Audit(deps.Logger, action, resource)
	}

	secured.GET("/menu", auth.Menu)

	secured.GET("/tasks", tasks.List)
	secured.POST("/tasks/refresh", tasks.Refresh)
	secured.PUT("/tasks/:id/submit", audit("submit", "task"), tasks.Submit)

	secured.GET("/exams", exams.List)
	secured.GET("/exams/export", exams.Export)
	secured.GET("/exams/:id", exams.Get)
	secured.POST("/exams", manage, audit("create", "exam"), exams.Create)
	secured.PUT("/exams/:id", manage, audit("update", "exam"), exams.Update)
	secured.DELETE("/exams/:id", manage, audit("delete", "exam"), exams.Delete)
	secured.PUT("/exams/:id/notice", manage, audit("update_notice", "exam"), exams.Notice)
	secured.PUT("/exams/:id/syllabus", manage, audit("update_syllabus", "exam"), exams.Syllabus)
	secured.POST("/exams/:id/results", manage, audit("update_results", "exam"), exams.Results)
	secured.POST("/exams/:id/questions", audit("create", "question"), questions.Create)
	secured.PUT("/exams/:id/questions/:questionId", audit("update", "question"), questions.Update)
	secured.DELETE("/exams/:id/questions/:questionId", audit("delete", "question"), questions.Delete)
	secured.GET("/exam-options", exams.Options)

	secured.GET("/packages", packages.List)
	secured.POST("/packages", manage, audit("create", "package"), packages.Create)
	secured.PUT("/packages/:id", manage, audit("update", "package"), packages.Update)
	secured.GET("/packages/classes/:position", packages.Classes)
	secured.GET("/packages/subjects/:position/:className", packages.Subjects)
}
