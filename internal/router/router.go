package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/config"
	"github.com/pageza/pantrypal/backend/internal/api"
	"github.com/pageza/pantrypal/backend/internal/middleware"
)

// New builds the gin engine with the shared middleware chain and mounts every
// API route on it.
func New(cfg *config.Config, services api.Services, log *zap.Logger) *gin.Engine {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	if services.Log == nil {
		services.Log = log
	}
	if services.AllowedOrigins == nil {
		services.AllowedOrigins = cfg.AllowedOrigins
	}
	api.RegisterRoutes(router, services)

	return router
}
