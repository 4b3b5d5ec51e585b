package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Muazzam0101/neurolearn-amep/internal/middleware"
	"github.com/Muazzam0101/neurolearn-amep/internal/models"
	"github.com/Muazzam0101/neurolearn-amep/internal/service"
)

// Deps bundles everything the router needs.
type Deps struct {
	Auth      *service.AuthService
	Courses   *service.CourseService
	Contents  *service.ContentService
	Quiz      *service.QuizService
	Dashboard *service.DashboardService
	Export    *service.ExportService
	Metrics   *service.MetricsService
}

// Register mounts all API routes under the given prefix.
func Register(r *gin.Engine, prefix string, deps Deps) {
	authHandler := NewAuthHandler(deps.Auth)
	courseHandler := NewCourseHandler(deps.Courses)
	contentHandler := NewContentHandler(deps.Contents)
	quizHandler := NewQuizHandler(deps.Quiz)
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	exportHandler := NewExportHandler(deps.Export)
	metricsHandler := NewMetricsHandler(deps.Metrics)

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(prefix)

	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)
	api.POST("/forgot-password", authHandler.ForgotPassword)
	api.POST("/validate-reset-token", authHandler.ValidateResetToken)
	api.POST("/reset-password", authHandler.ResetPassword)

	// Signed file downloads authenticate through the token itself.
	api.GET("/files/contents", contentHandler.ServeFile)

	secured := api.Group("")
	secured.Use(middleware.JWT(deps.Auth))

	secured.GET("/me", authHandler.Me)

	teacher := middleware.RequireRoles(models.RoleTeacher)
	student := middleware.RequireRoles(models.RoleStudent)
	anyRole := middleware.RequireRoles(models.RoleTeacher, models.RoleStudent)

	secured.GET("/courses", anyRole, courseHandler.List)
	secured.GET("/courses/:id", anyRole, courseHandler.Get)
	secured.POST("/courses", teacher, courseHandler.Create)
	secured.DELETE("/courses/:id", teacher, courseHandler.Delete)
	secured.GET("/courses/:id/results/export", teacher, exportHandler.CourseResults)

	secured.GET("/topics", anyRole, courseHandler.ListTopics)
	secured.POST("/topics", teacher, courseHandler.CreateTopic)

	secured.GET("/contents", anyRole, contentHandler.List)
	secured.POST("/contents", teacher, contentHandler.Create)
	secured.GET("/contents/:id/url", anyRole, contentHandler.SignedURL)

	secured.POST("/questions", teacher, quizHandler.CreateQuestion)
	secured.GET("/questions", teacher, quizHandler.ListQuestions)

	secured.GET("/quiz/next", student, quizHandler.NextQuestion)
	secured.POST("/quiz/attempts", student, quizHandler.SubmitAttempt)
	secured.GET("/dashboard", student, dashboardHandler.Summary)
}
