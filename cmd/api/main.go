package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/domain/session"
	apphttp "jobboard/internal/http"
	"jobboard/internal/http/handlers"
	httpmw "jobboard/internal/http/middleware"
	"jobboard/internal/observability"
	"jobboard/internal/repository/postgres"
	"jobboard/internal/security"
	appsession "jobboard/internal/session"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
		Migrate:         cfg.MigrateOnStart,
	})
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	companyRepo := postgres.NewCompanyRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	savedJobRepo := postgres.NewSavedJobRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	analyticsRepo := postgres.NewAnalyticsRepository(db)
	statsRepo := postgres.NewStatsRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)

	var sessions session.Store
	var limiter httpmw.Limiter
	if cfg.RedisURL != "" {
		redisStore, err := appsession.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		sessions = redisStore
		limiter = httpmw.NewRedisLimiter(redisStore.Client())
	} else {
		logger.Info("REDIS_URL not set, using in-memory sessions and rate limiting")
		sessions = appsession.NewMemoryStore()
		limiter = httpmw.NewRateLimiter()
	}

	pages := app.PageConfig{DefaultLimit: cfg.DefaultPageSize, MaxLimit: cfg.MaxPageSize}
	authService := app.NewAuthService(userRepo, sessions, analyticsRepo, jwtProvider, logger, cfg.AccessTokenTTL, cfg.SessionTTL)
	userService := app.NewUserService(userRepo, analyticsRepo, pages)
	companyService := app.NewCompanyService(companyRepo, analyticsRepo, pages)
	jobService := app.NewJobService(jobRepo, companyRepo, savedJobRepo, analyticsRepo, pages, cfg.JobRejectMode)
	applicationService := app.NewApplicationService(applicationRepo, jobRepo, companyRepo, analyticsRepo, pages)
	savedJobService := app.NewSavedJobService(savedJobRepo, jobRepo, analyticsRepo)
	categoryService := app.NewCategoryService(categoryRepo)
	adminService := app.NewAdminService(statsRepo)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        handlers.NewAuthHandler(authService),
		JobHandler:         handlers.NewJobHandler(jobService),
		ApplicationHandler: handlers.NewApplicationHandler(applicationService),
		CompanyHandler:     handlers.NewCompanyHandler(companyService),
		SavedJobHandler:    handlers.NewSavedJobHandler(savedJobService),
		CategoryHandler:    handlers.NewCategoryHandler(categoryService),
		AdminHandler:       handlers.NewAdminHandler(adminService, userService, companyService, jobService),
		AuthMiddleware:     httpmw.NewAuthMiddleware(jwtProvider, sessions, userRepo),
		Limiter:            limiter,
		LoginRateLimit:     cfg.LoginRateLimit,
		LoginRateWindow:    cfg.LoginRateWindow,
		RequestTimeout:     cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
