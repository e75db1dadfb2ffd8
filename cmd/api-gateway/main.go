package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/uni-records-api/api/swagger"
	"github.com/noah-isme/uni-records-api/internal/handler"
	"github.com/noah-isme/uni-records-api/internal/middleware"
	"github.com/noah-isme/uni-records-api/internal/models"
	"github.com/noah-isme/uni-records-api/internal/repository"
	"github.com/noah-isme/uni-records-api/internal/service"
	"github.com/noah-isme/uni-records-api/pkg/config"
	"github.com/noah-isme/uni-records-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/uni-records-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/uni-records-api/pkg/middleware/requestid"
)

// @title University Records API
// @version 1.0.0
// @description Academic records engine: students, professors, courses, enrollments and grades
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	studentRepo := repository.NewIdentityRepository[*models.Student]()
	professorRepo := repository.NewIdentityRepository[*models.Professor]()
	courseRepo := repository.NewIdentityRepository[*models.Course]()

	ledgerSvc := service.NewLedgerService(studentRepo, courseRepo, cfg.Academic, metricsSvc, logr)
	analyticsSvc := service.NewAnalyticsService(ledgerSvc, courseRepo, cfg.Academic, logr)
	studentSvc := service.NewStudentService(studentRepo, ledgerSvc, cfg.Academic, metricsSvc, validate, logr)
	professorSvc := service.NewProfessorService(professorRepo, cfg.Academic, metricsSvc, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, professorRepo, ledgerSvc, metricsSvc, validate, logr)
	reportSvc := service.NewReportService(ledgerSvc, studentRepo, courseRepo, analyticsSvc, cfg.Reports, logr)

	studentHandler := handler.NewStudentHandler(studentSvc)
	professorHandler := handler.NewProfessorHandler(professorSvc)
	courseHandler := handler.NewCourseHandler(courseSvc, ledgerSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(ledgerSvc)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc)
	reportHandler := handler.NewReportHandler(reportSvc, cfg.Reports.ExportsEnabled)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		students := api.Group("/students")
		students.POST("", studentHandler.Create)
		students.GET("", studentHandler.List)
		students.GET("/:id", studentHandler.Get)
		students.PUT("/:id", studentHandler.Update)
		students.DELETE("/:id", studentHandler.Delete)
		students.GET("/:id/validate", studentHandler.Validate)

		professors := api.Group("/professors")
		professors.POST("", professorHandler.Create)
		professors.GET("", professorHandler.List)
		professors.GET("/:id", professorHandler.Get)
		professors.PUT("/:id", professorHandler.Update)
		professors.DELETE("/:id", professorHandler.Delete)
		professors.GET("/:id/validate", professorHandler.Validate)

		courses := api.Group("/courses")
		courses.POST("", courseHandler.Create)
		courses.GET("", courseHandler.List)
		courses.GET("/:code", courseHandler.Get)
		courses.PUT("/:code", courseHandler.Update)
		courses.DELETE("/:code", courseHandler.Delete)
		courses.PUT("/:code/professor", courseHandler.AssignProfessor)
		courses.DELETE("/:code/professor", courseHandler.ClearProfessor)
		courses.GET("/:code/students", courseHandler.Students)

		enrollments := api.Group("/enrollments")
		enrollments.POST("", enrollmentHandler.Create)
		enrollments.GET("", enrollmentHandler.List)
		enrollments.POST("/grades", enrollmentHandler.AddGrade)

		analytics := api.Group("/analytics")
		analytics.GET("/top-students", analyticsHandler.TopStudents)
		analytics.GET("/at-risk", analyticsHandler.StudentsAtRisk)
		analytics.GET("/popular-courses", analyticsHandler.PopularCourses)
		analytics.GET("/overall-average", analyticsHandler.OverallAverage)
		analytics.GET("/programs", analyticsHandler.ProgramStats)
		analytics.GET("/students/search", analyticsHandler.SearchStudents)

		reports := api.Group("/reports")
		reports.GET("/students/:id", reportHandler.StudentReport)
		reports.GET("/students/:id/export", reportHandler.ExportStudentReport)
		reports.GET("/analytics/export", reportHandler.ExportAnalytics)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
