package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/istadem2077/turanmath-backend/internal/config"
	"github.com/istadem2077/turanmath-backend/internal/handler"
	"github.com/istadem2077/turanmath-backend/internal/middleware"
	"github.com/istadem2077/turanmath-backend/internal/response"
	"github.com/istadem2077/turanmath-backend/internal/service"
)

// Handlers bundles every HTTP and WebSocket handler the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	Exam    *handler.ExamHandler
	Teacher *handler.TeacherHandler
	Monitor *handler.MonitorHandler
}

// SetupRouter wires all routes and middleware onto a gin engine.
func SetupRouter(cfg *config.Config, authService *service.AuthService, h Handlers) *gin.Engine {
	gin.SetMode(cfg.GinMode)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))
	r.Use(response.RequestIDMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.Use(authLimiter.Middleware())
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
		}

		exam := v1.Group("/exam")
		{
			exam.POST("/start", h.Exam.StartExam)
			exam.POST("/submit", h.Exam.SubmitExam)
		}

		teacher := v1.Group("/teacher")
		teacher.Use(middleware.RequireTeacherJWT(authService))
		{
			teacher.GET("/profile", h.Auth.GetProfile)
			teacher.POST("/classrooms", h.Teacher.CreateClassroom)
			teacher.GET("/classrooms", h.Teacher.ListClassrooms)
			teacher.GET("/classrooms/:classroom_id/results", h.Teacher.GetClassroomResults)
			teacher.POST("/classrooms/:classroom_id/activate", h.Teacher.ActivateClassroom)
			teacher.POST("/classrooms/:classroom_id/end", h.Teacher.EndClassroom)
			teacher.POST("/classrooms/:classroom_id/students", h.Teacher.RegisterStudent)
			teacher.POST("/students", h.Teacher.CreateStudent)
			teacher.GET("/categories", h.Teacher.ListCategories)
		}
	}

	ws := r.Group("/ws/v1")
	ws.Use(middleware.RequireTeacherWSAuth(authService))
	{
		ws.GET("/teacher/classrooms/:classroom_id/monitor", h.Monitor.StreamClassroomMonitor)
	}

	return r
}
