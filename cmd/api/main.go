package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/brightminds-api/api/swagger"
	"github.com/noah-isme/brightminds-api/internal/handler"
	"github.com/noah-isme/brightminds-api/internal/models"
	"github.com/noah-isme/brightminds-api/internal/repository"
	"github.com/noah-isme/brightminds-api/internal/service"
	"github.com/noah-isme/brightminds-api/pkg/config"
	"github.com/noah-isme/brightminds-api/pkg/database"
	"github.com/noah-isme/brightminds-api/pkg/logger"
)

// @title Bright Minds API
// @version 1.0.0
// @description Content and administration API for the Bright Minds school site
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	store, err := database.NewMongo(ctx, cfg.Mongo, metrics.CommandMonitor())
	if err != nil {
		logr.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logr.Warn("mongodb disconnect failed", zap.Error(err))
		}
	}()

	db := store.Database()
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		logr.Error("failed to ensure indexes", zap.Error(err))
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	eventRepo := repository.NewEventRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:           cfg.JWT.Secret,
		TokenExpiry:      cfg.JWT.Expiration,
		Issuer:           cfg.JWT.Issuer,
		RegistrableRoles: registrableRoles(cfg.Users.RegistrableRoles),
	})
	userSvc := service.NewUserService(userRepo, validate, logr, service.UserConfig{DefaultPassword: cfg.Users.DefaultPassword})
	newsSvc := service.NewNewsService(newsRepo, validate, logr)
	eventSvc := service.NewEventService(eventRepo, validate, logr)
	settingSvc := service.NewSettingService(settingRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(userRepo, newsRepo, eventRepo, logr)

	if err := settingSvc.EnsureInitialized(ctx); err != nil {
		logr.Warn("school settings not initialized", zap.Error(err))
	}

	router := handler.NewRouter(handler.RouterOptions{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logr,
		Tokens:         authSvc,
		Metrics:        metrics,
		Auth:           handler.NewAuthHandler(authSvc),
		News:           handler.NewNewsHandler(newsSvc),
		Events:         handler.NewEventHandler(eventSvc),
		Users:          handler.NewUserHandler(userSvc),
		Settings:       handler.NewSettingHandler(settingSvc),
		Dashboard:      handler.NewDashboardHandler(dashboardSvc),
		Ops:            handler.NewMetricsHandler(metrics, store),
	})

	if cfg.Env != config.EnvProduction {
		router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logr.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logr.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logr.Error("server failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

func registrableRoles(raw []string) []models.UserRole {
	roles := make([]models.UserRole, 0, len(raw))
	for _, r := range raw {
		roles = append(roles, models.UserRole(r))
	}
	return roles
}
