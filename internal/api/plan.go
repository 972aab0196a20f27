package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/internal/service"
	"github.com/pageza/pantrypal/backend/internal/session"
	"github.com/pageza/pantrypal/backend/internal/types"
)

// PlanHandler edits the weekly meal plan of the caller's session.
type PlanHandler struct {
	sessions service.ISessionService
	planner  service.IPlannerService
	log      *zap.Logger
}

func NewPlanHandler(sessions service.ISessionService, planner service.IPlannerService, log *zap.Logger) *PlanHandler {
	return &PlanHandler{sessions: sessions, planner: planner, log: log}
}

func (h *PlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plan := router.Group("/plan")
	{
		plan.GET("", h.GetPlan)
		plan.GET("/shopping-list", h.ShoppingList)
		plan.PUT("/:day/:meal", h.Assign)
		plan.DELETE("/:day/:meal", h.Clear)
	}
}

func planState(snap session.Snapshot) gin.H {
	return gin.H{
		"revision": snap.Revision,
		"slots":    snap.Plan,
	}
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	sess, ok := userSession(c, h.sessions, h.log)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, planState(sess.Snapshot()))
}

func parseSlot(c *gin.Context) (types.Day, types.MealType, bool) {
	day, err := types.ParseDay(c.Param("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, 0, false
	}
	meal, err := types.ParseMealType(c.Param("meal"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, 0, false
	}
	return day, meal, true
}

func (h *PlanHandler) Assign(c *gin.Context) {
	day, meal, ok := parseSlot(c)
	if !ok {
		return
	}
	var req types.AssignMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, ok := userSession(c, h.sessions, h.log)
	if !ok {
		return
	}

	if err := h.planner.Assign(c.Request.Context(), sess, day, meal, req.RecipeID, req.Servings); err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		case errors.Is(err, session.ErrInvalidSlot):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.Error("Failed to assign meal", zap.String("session", sess.Key()), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assign meal"})
		}
		return
	}
	c.JSON(http.StatusOK, planState(sess.Snapshot()))
}

func (h *PlanHandler) Clear(c *gin.Context) {
	day, meal, ok := parseSlot(c)
	if !ok {
		return
	}
	sess, ok := userSession(c, h.sessions, h.log)
	if !ok {
		return
	}

	if err := h.planner.Clear(c.Request.Context(), sess, day, meal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, planState(sess.Snapshot()))
}

// ShoppingList returns the aggregated list both as structured items and as
// display lines.
func (h *PlanHandler) ShoppingList(c *gin.Context) {
	sess, ok := userSession(c, h.sessions, h.log)
	if !ok {
		return
	}

	items, err := h.planner.ShoppingList(c.Request.Context(), sess)
	if err != nil {
		h.log.Error("Failed to build shopping list", zap.String("session", sess.Key()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build shopping list"})
		return
	}

	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = it.String()
	}
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"lines": lines,
	})
}
