package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Muazzam0101/neurolearn-amep/api/swagger"
	"github.com/Muazzam0101/neurolearn-amep/internal/handler"
	internalmiddleware "github.com/Muazzam0101/neurolearn-amep/internal/middleware"
	"github.com/Muazzam0101/neurolearn-amep/internal/repository"
	"github.com/Muazzam0101/neurolearn-amep/internal/service"
	"github.com/Muazzam0101/neurolearn-amep/pkg/cache"
	"github.com/Muazzam0101/neurolearn-amep/pkg/config"
	"github.com/Muazzam0101/neurolearn-amep/pkg/database"
	"github.com/Muazzam0101/neurolearn-amep/pkg/logger"
	"github.com/Muazzam0101/neurolearn-amep/pkg/mail"
	corsmiddleware "github.com/Muazzam0101/neurolearn-amep/pkg/middleware/cors"
	reqidmiddleware "github.com/Muazzam0101/neurolearn-amep/pkg/middleware/requestid"
	"github.com/Muazzam0101/neurolearn-amep/pkg/storage"
)

// @title NeuroLearn AMEP API
// @version 1.0.0
// @description Adaptive learning platform backend
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	// Redis is optional: without it dashboards are computed per request.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, dashboard caching disabled", "error", err)
		redisClient = nil
	}

	store, err := storage.NewLocalStorage(cfg.Content.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare uploads directory", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Content.SignedURLSecret, cfg.Content.SignedURLTTL)

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	contentRepo := repository.NewContentRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()

	dispatcher := mail.NewDispatcher(cfg.Mail, logr)
	if !dispatcher.Configured() {
		logr.Warn("no email transport configured, reset emails will be dropped")
	}
	mailerSvc := service.NewMailerService(dispatcher, cfg.FrontendURL, cfg.Mail.QueueWorkers, metricsSvc, logr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	mailerSvc.Start(ctx)
	defer mailerSvc.Stop()

	authSvc := service.NewAuthService(userRepo, mailerSvc, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		ResetTokenTTL:     cfg.Reset.TokenTTL,
		Issuer:            "neurolearn-amep",
	})
	courseSvc := service.NewCourseService(courseRepo, store, validate, logr)
	contentSvc := service.NewContentService(contentRepo, courseRepo, store, signer, validate, logr, cfg.Content.MaxFileSizeBytes)
	dashboardSvc := service.NewDashboardService(quizRepo, cacheRepo, metricsSvc, logr, cfg.Dashboard.CacheTTL, cfg.Quiz.MasteryWindow)
	quizSvc := service.NewQuizService(quizRepo, dashboardSvc, validate, logr, cfg.Quiz.MasteryWindow)
	exportSvc := service.NewExportService(quizRepo, courseRepo, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	handler.Register(r, cfg.APIPrefix, handler.Deps{
		Auth:      authSvc,
		Courses:   courseSvc,
		Contents:  contentSvc,
		Quiz:      quizSvc,
		Dashboard: dashboardSvc,
		Export:    exportSvc,
		Metrics:   metricsSvc,
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}

	if err := cacheRepo.Close(); err != nil {
		logr.Sugar().Warnw("failed to close redis", "error", err)
	}
}
