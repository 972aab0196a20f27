package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/internal/middleware"
	"github.com/pageza/pantrypal/backend/internal/realtime"
	"github.com/pageza/pantrypal/backend/internal/service"
	"github.com/pageza/pantrypal/backend/internal/session"
)

// Services bundles what the HTTP surface needs. Photos, SearchLimiter,
// PhotoLimiter and Health may be nil.
type Services struct {
	Auth            service.IAuthService
	Recommendations service.IRecommendationService
	Details         service.IDetailService
	Sessions        service.ISessionService
	Planner         service.IPlannerService
	Journal         service.IJournalService
	Photos          service.IPhotoService
	Hub             *realtime.Hub
	SearchLimiter   *middleware.RateLimiter
	PhotoLimiter    *middleware.RateLimiter
	AllowedOrigins  []string
	Health          func(ctx context.Context) error
	Log             *zap.Logger
}

// HealthCheck returns the health status of the API. check, when set, pings
// the backing stores.
func HealthCheck(check func(ctx context.Context) error, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				log.Warn("Health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "PantryPal API is running",
			"version": "v1.0.0",
		})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, s Services) {
	if s.Log == nil {
		s.Log = zap.NewNop()
	}

	// Health check endpoint (no auth required)
	health := HealthCheck(s.Health, s.Log)
	router.GET("/health", health)
	router.GET("/api/health", health)

	recipeHandler := NewRecipeHandler(s.Recommendations, s.Details, s.SearchLimiter, s.Log)
	authHandler := NewAuthHandler(s.Auth, s.Log)
	sessionHandler := NewSessionHandler(s.Sessions, s.Recommendations, s.Details, s.Hub, s.AllowedOrigins, s.Log)
	planHandler := NewPlanHandler(s.Sessions, s.Planner, s.Log)
	journalHandler := NewJournalHandler(s.Journal, s.Photos, s.PhotoLimiter, s.Log)

	// Unversioned search path used by the web client.
	router.GET("/recipes", recipeHandler.limited(), recipeHandler.ListRecipes)

	v1 := router.Group("/api/v1")
	recipeHandler.RegisterRoutes(v1)
	authHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(s.Auth))
	sessionHandler.RegisterRoutes(protected)
	planHandler.RegisterRoutes(protected)
	journalHandler.RegisterRoutes(protected)
}

// userSession resolves the live session of the authenticated user. It writes
// the error response itself and reports false on failure.
func userSession(c *gin.Context, sessions service.ISessionService, log *zap.Logger) (*session.Session, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return nil, false
	}
	sess, err := sessions.Get(c.Request.Context(), userID.String())
	if err != nil {
		log.Error("Failed to load session", zap.String("user_id", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
		return nil, false
	}
	return sess, true
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
	}
	return userID, ok
}

// splitList splits a comma separated query value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// queryInt reads an integer query parameter. Missing or malformed values
// yield def.
func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query(name)))
	if err != nil {
		return def
	}
	return v
}
