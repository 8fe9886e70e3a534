package router

import (
	"github.com/gin-gonic/gin"

	"sobordos/internal/config"
	"sobordos/internal/handler"
	"sobordos/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, reconH *handler.ReconHandler, healthH *handler.HealthHandler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.Auth(&cfg.Auth))

	v1.POST("/reconcile", reconH.Reconcile)
	v1.POST("/reconcile/export", reconH.Export)
	v1.POST("/files/inspect", reconH.Inspect)

	return r
}
