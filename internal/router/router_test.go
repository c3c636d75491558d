package router

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/istadem2077/turanmath-backend/internal/config"
	"github.com/istadem2077/turanmath-backend/internal/handler"
	"github.com/istadem2077/turanmath-backend/internal/service"
)

func testRouter(cfg *config.Config) *gin.Engine {
	authService := service.NewAuthService(cfg, nil)
	classroomService := service.NewClassroomService(nil, nil, nil, nil, nil, zerolog.Nop())

	return SetupRouter(cfg, authService, Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Exam:    handler.NewExamHandler(nil),
		Teacher: handler.NewTeacherHandler(classroomService, nil, nil),
		Monitor: handler.NewMonitorHandler(nil, classroomService, zerolog.Nop(), nil),
	})
}

func TestSetupRouterAppliesGinMode(t *testing.T) {
	cfg := &config.Config{
		GinMode:   gin.ReleaseMode,
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}

	if testRouter(cfg) == nil {
		t.Fatal("SetupRouter returned nil")
	}
	if gin.Mode() != gin.ReleaseMode {
		t.Errorf("gin mode = %q, want %q", gin.Mode(), gin.ReleaseMode)
	}
}

func TestSetupRouterRegistersRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := testRouter(&config.Config{
		GinMode:   gin.TestMode,
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	})

	want := []string{
		"GET /health",
		"POST /api/v1/exam/start",
		"POST /api/v1/exam/submit",
		"POST /api/v1/auth/login",
		"POST /api/v1/teacher/classrooms",
		"GET /api/v1/teacher/classrooms",
		"GET /api/v1/teacher/classrooms/:classroom_id/results",
		"GET /ws/v1/teacher/classrooms/:classroom_id/monitor",
	}

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, route := range want {
		if !registered[route] {
			t.Errorf("route %q not registered", route)
		}
	}
}
