package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	"github.com/coursehub/enrollment-api/internal/api/handler"
	"github.com/coursehub/enrollment-api/internal/api/middleware"
	"github.com/coursehub/enrollment-api/internal/core/ports"

	_ "github.com/coursehub/enrollment-api/docs"
)

// Services groups the use-case implementations the router exposes over HTTP.
type Services struct {
	Auth       ports.AuthService
	Course     ports.CourseService
	Lesson     ports.LessonService
	Enrollment ports.EnrollmentService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svcs Services, db *gorm.DB, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("coursehub"))

	authRequired := middleware.Auth(jwtSecret)
	authOptional := middleware.OptionalAuth(jwtSecret)

	authHandler := handler.NewAuthHandler(svcs.Auth)
	courseHandler := handler.NewCourseHandler(svcs.Course)
	lessonHandler := handler.NewLessonHandler(svcs.Lesson)
	enrollmentHandler := handler.NewEnrollmentHandler(svcs.Enrollment)
	healthHandler := handler.NewHealthHandler(db, rdb)

	// --- Auth routes ---
	v1 := e.Group("/api/v1")
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/auth/me", authHandler.Me, authRequired)

	// --- Course routes: reads are public, writes need a token ---
	v1.GET("/courses", courseHandler.List, authOptional)
	v1.GET("/courses/:id", courseHandler.Get, authOptional)
	v1.POST("/courses", courseHandler.Create, authRequired)
	v1.PUT("/courses/:id", courseHandler.Update, authRequired)
	v1.PATCH("/courses/:id", courseHandler.Update, authRequired)
	v1.DELETE("/courses/:id", courseHandler.Delete, authRequired)

	// --- Lesson routes ---
	v1.GET("/lessons", lessonHandler.List, authOptional)
	v1.GET("/lessons/:id", lessonHandler.Get, authOptional)
	v1.POST("/lessons", lessonHandler.Create, authRequired)
	v1.PUT("/lessons/:id", lessonHandler.Update, authRequired)
	v1.PATCH("/lessons/:id", lessonHandler.Update, authRequired)
	v1.DELETE("/lessons/:id", lessonHandler.Delete, authRequired)

	// --- Enrollment routes ---
	v1.GET("/enrollments", enrollmentHandler.List, authRequired)
	v1.POST("/enrollments", enrollmentHandler.Create, authRequired)
	v1.DELETE("/enrollments/:id", enrollmentHandler.Delete, authRequired)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
