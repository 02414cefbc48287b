package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/coursehub/enrollment-api/internal/api"
	"github.com/coursehub/enrollment-api/internal/core/ports"
	"github.com/coursehub/enrollment-api/internal/core/service"
	"github.com/coursehub/enrollment-api/internal/infrastructure/cache"
	"github.com/coursehub/enrollment-api/internal/infrastructure/db/postgres"
	"github.com/coursehub/enrollment-api/internal/infrastructure/db/redis"
	"github.com/coursehub/enrollment-api/internal/infrastructure/queue"
	"github.com/coursehub/enrollment-api/internal/pkg/config"
	"github.com/coursehub/enrollment-api/pkg/logger"
)

const (
	tokenTTL        = 30 * time.Minute
	shutdownTimeout = 10 * time.Second
)

// @title           CourseHub Enrollment API
// @version         1.0
// @description     Course catalog, lessons, and enrollment service.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("application error")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	db, err := postgres.Connect(postgres.Config{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Name:     cfg.Postgres.Name,
		SSLMode:  cfg.Postgres.SSLMode,
	})
	if err != nil {
		return err
	}
	if err := postgres.Migrate(db); err != nil {
		return err
	}
	log.Info().Str("host", cfg.Postgres.Host).Str("db", cfg.Postgres.Name).Msg("postgres connected")

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	// The cache implementation is selected once here; call sites never
	// branch on the flag.
	var courseCache ports.CourseCache
	if cfg.EnableCache {
		courseCache = cache.NewRedisCourseCache(rdb, log)
	} else {
		courseCache = cache.NewNoopCourseCache()
		log.Info().Msg("course cache disabled")
	}

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(db)
	courseRepo := postgres.NewCourseRepository(db)
	lessonRepo := postgres.NewLessonRepository(db)
	enrollmentRepo := postgres.NewEnrollmentRepository(db)

	// --- Background workers ---
	notificationSvc := service.NewNotificationService(enrollmentRepo, redis.NewTaskGuard(rdb), log)
	dispatcher := queue.NewDispatcher(cfg.Queue.Workers, notificationSvc, log)
	dispatcher.Start(ctx)

	reportSvc := service.NewReportService(courseRepo, enrollmentRepo, log)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 0 * * *", func() { reportSvc.DailyReport(ctx) }); err != nil {
		return err
	}
	scheduler.Start()

	// --- Services ---
	svcs := api.Services{
		Auth:       service.NewAuthService(userRepo, cfg.JWTSecret, tokenTTL),
		Course:     service.NewCourseService(courseRepo, courseCache, log),
		Lesson:     service.NewLessonService(lessonRepo, courseRepo, courseCache, log),
		Enrollment: service.NewEnrollmentService(enrollmentRepo, courseRepo, dispatcher, log),
	}

	e := api.NewRouter(svcs, db, rdb, cfg.JWTSecret, log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- e.Start(":" + cfg.Port)
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	cronCtx := scheduler.Stop()
	<-cronCtx.Done()

	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close error")
	}
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("postgres close error")
		}
	}

	log.Info().Msg("application stopped")
	return nil
}
