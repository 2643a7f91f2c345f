package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/brightminds-api/internal/middleware"
	"github.com/noah-isme/brightminds-api/internal/policy"
	"github.com/noah-isme/brightminds-api/internal/service"
	"github.com/noah-isme/brightminds-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/brightminds-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/brightminds-api/pkg/middleware/requestid"
)

// RouterOptions carries everything NewRouter wires together.
type RouterOptions struct {
	APIPrefix      string
	AllowedOrigins []string
	Logger         *zap.Logger
	Tokens         middleware.TokenValidator
	Metrics        *service.MetricsService

	Auth      *AuthHandler
	News      *NewsHandler
	Events    *EventHandler
	Users     *UserHandler
	Settings  *SettingHandler
	Dashboard *DashboardHandler
	Ops       *MetricsHandler
}

// NewRouter builds the gin engine with the global middleware chain and every route.
func NewRouter(opts RouterOptions) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.APIPrefix == "" {
		opts.APIPrefix = "/api"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}

	if opts.Ops != nil {
		r.GET("/health", opts.Ops.Health)
		r.GET("/ready", opts.Ops.Ready)
		if opts.Metrics != nil {
			r.GET("/metrics", opts.Ops.Prometheus)
		}
	}

	api := r.Group(opts.APIPrefix)
	auth := middleware.JWT(opts.Tokens)

	api.POST("/register", opts.Auth.Register)
	api.POST("/login", opts.Auth.Login)
	api.POST("/change-password", auth, opts.Auth.ChangePassword)

	api.GET("/news", opts.News.List)
	api.GET("/news/:id", opts.News.Get)
	api.POST("/news", auth, opts.News.Create)
	api.PUT("/news/:id", auth, opts.News.Update)
	api.DELETE("/news/:id", auth, opts.News.Delete)

	api.GET("/events", opts.Events.List)
	api.POST("/events", auth, opts.Events.Create)
	api.PUT("/events/:id", auth, opts.Events.Update)
	api.DELETE("/events/:id", auth, opts.Events.Delete)

	users := api.Group("/users", auth)
	users.GET("", middleware.Authorize(policy.KindUser, policy.ActionList), opts.Users.List)
	users.POST("", middleware.Authorize(policy.KindUser, policy.ActionCreate), opts.Users.Create)
	users.GET("/export", middleware.Authorize(policy.KindUser, policy.ActionExport), opts.Users.Export)
	users.DELETE("/:id", opts.Users.Delete)

	api.GET("/settings", auth, opts.Settings.Get)
	api.PUT("/settings", auth, opts.Settings.Update)

	api.GET("/dashboard/stats", auth, opts.Dashboard.Stats)

	return r
}
