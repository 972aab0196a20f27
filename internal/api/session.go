package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/internal/realtime"
	"github.com/pageza/pantrypal/backend/internal/service"
	"github.com/pageza/pantrypal/backend/internal/session"
	"github.com/pageza/pantrypal/backend/internal/types"
)

// SessionHandler exposes the pantry and mood filter of the caller's session,
// recommendations computed from them and the session event stream.
type SessionHandler struct {
	sessions        service.ISessionService
	recommendations service.IRecommendationService
	details         service.IDetailService
	hub             *realtime.Hub
	upgrader        websocket.Upgrader
	log             *zap.Logger
}

func NewSessionHandler(sessions service.ISessionService, recommendations service.IRecommendationService, details service.IDetailService, hub *realtime.Hub, allowedOrigins []string, log *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessions:        sessions,
		recommendations: recommendations,
		details:         details,
		hub:             hub,
		upgrader:        realtime.Upgrader(allowedOrigins),
		log:             log,
	}
}

func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	s := router.Group("/session")
	{
		s.GET("", h.GetSession)
		s.POST("/ingredients", h.AddIngredient)
		s.DELETE("/ingredients/:index", h.RemoveIngredient)
		s.POST("/moods/:tag", h.ToggleMood)
		s.GET("/recommendations", h.Recommendations)
		s.GET("/recipes/:id", h.GetRecipe)
		s.GET("/events", h.Events)
	}
}

func sessionState(snap session.Snapshot) gin.H {
	return gin.H{
		"revision": snap.Revision,
		"pantry":   snap.Pantry,
		"moods":    snap.Moods,
	}
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	sess, ok := userSession(c, h.sessions, h.log)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sessionState(sess.Snapshot()))
}

// AddIngredient appends to the pantry. Blank and duplicate names are
// accepted and change nothing.
func (h *SessionHandler) AddIngredient(c *gin.Context) {
	var req types.AddIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, ok := userSession(c, h.sessions, h.log)
	if !ok {
		return
	}

	added := sess.AddIngredient(req.Name)
	state := sessionState(sess.Snapshot())
	state["changed"] = added
	c.JSON(http.StatusOK, state)
}

// RemoveIngredient drops a pantry entry by position. An index outside the
// pantry changes nothing.
func (h *SessionHandler) RemoveIngredient(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient index"})
		return
	}
	sess, ok := userSession(c, h.sessions, h.log)
	if !ok {
		return
	}

	removed := sess.RemoveIngredient(index)
	state := sessionState(sess.Snapshot())
	state["changed"] = removed
	c.JSON(http.StatusOK, state)
}

func (h *SessionHandler) ToggleMood(c *gin.Context) {
	tag, valid := types.ParseMoodTag(c.Param("tag"))
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown mood tag"})
		return
	}
	sess, ok := userSession(c, h.sessions, h.log)
	if !ok {
		return
	}

	if err := sess.ToggleMood(tag); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessionState(sess.Snapshot()))
}

func (h *SessionHandler) Recommendations(c *gin.Context) {
	sess, ok := userSession(c, h.sessions, h.log)
	if !ok {
		return
	}

	recipes, err := h.recommendations.RecommendForSession(c.Request.Context(), sess)
	if err != nil {
		h.log.Error("Failed to rank recipes", zap.String("session", sess.Key()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe resolves a recipe against the session pantry as it is now.
func (h *SessionHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	sess, ok := userSession(c, h.sessions, h.log)
	if !ok {
		return
	}
	resolveDetail(c, h.details, h.log, id, sess.Snapshot().Pantry)
}

// Events upgrades to a websocket that receives the session snapshot first
// and then one message per committed change.
func (h *SessionHandler) Events(c *gin.Context) {
	if h.hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event stream unavailable"})
		return
	}
	sess, ok := userSession(c, h.sessions, h.log)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.log.Warn("Websocket upgrade failed", zap.String("session", sess.Key()), zap.Error(err))
		return
	}
	h.hub.Serve(realtime.NewClient(sess.Key(), conn), h.sessions.Message(sess, nil))
}
