package main

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	commonhandlers "github.com/jgirmay/fps-trainer/internal/common/handlers"
	"github.com/jgirmay/fps-trainer/internal/common/health"
	"github.com/jgirmay/fps-trainer/internal/common/middleware"
	"github.com/jgirmay/fps-trainer/internal/trainer/handlers"
	"github.com/jgirmay/fps-trainer/pkg/config"
	"github.com/jgirmay/fps-trainer/pkg/metrics"
	"github.com/jgirmay/fps-trainer/pkg/tracing"
)

func newRouter(cfg *config.Config, checker *health.HealthChecker) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.Use(otelgin.Middleware(tracing.ServiceName))
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(metrics.Middleware())

	commonhandlers.NewHealthHandler(checker).RegisterRoutes(router)
	router.GET("/metrics", metrics.Handler())

	v1 := router.Group("/api/v1")
	handlers.RegisterRoutes(v1)

	return router
}
