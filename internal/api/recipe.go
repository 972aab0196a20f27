package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/internal/middleware"
	"github.com/pageza/pantrypal/backend/internal/service"
	"github.com/pageza/pantrypal/backend/internal/types"
)

// RecipeHandler serves stateless recipe search and detail. The pantry and
// mood filter come from the query string.
type RecipeHandler struct {
	recommendations service.IRecommendationService
	details         service.IDetailService
	limiter         *middleware.RateLimiter
	log             *zap.Logger
}

func NewRecipeHandler(recommendations service.IRecommendationService, details service.IDetailService, limiter *middleware.RateLimiter, log *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		recommendations: recommendations,
		details:         details,
		limiter:         limiter,
		log:             log,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	recipes.Use(h.limited())
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
	}
}

func (h *RecipeHandler) limited() gin.HandlerFunc {
	if h.limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return h.limiter.RateLimitMiddleware()
}

// ListRecipes ranks the catalog. Malformed or missing parameters mean no
// filter; this endpoint never answers 4xx for its query.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	pantry := splitList(c.Query("ingredients"))
	moods := types.ParseMoodList(c.Query("diet"))

	recipes, err := h.recommendations.Recommend(c.Request.Context(), pantry, moods)
	if err != nil {
		h.log.Error("Failed to rank recipes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	resolveDetail(c, h.details, h.log, id, splitList(c.Query("ingredients")))
}

// resolveDetail answers a detail request for the given pantry.
func resolveDetail(c *gin.Context, details service.IDetailService, log *zap.Logger, id uuid.UUID, pantry []string) {
	servings := queryInt(c, "servings", 0)
	spice := queryInt(c, "spice", types.SpiceMild)

	detail, err := details.Resolve(c.Request.Context(), id, pantry, servings, spice)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		log.Error("Failed to resolve recipe", zap.String("recipe_id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}
	c.JSON(http.StatusOK, detail)
}
