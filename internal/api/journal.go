package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/internal/middleware"
	"github.com/pageza/pantrypal/backend/internal/models"
	"github.com/pageza/pantrypal/backend/internal/service"
	"github.com/pageza/pantrypal/backend/internal/types"
)

type JournalHandler struct {
	journal service.IJournalService
	photos  service.IPhotoService
	limiter *middleware.RateLimiter
	log     *zap.Logger
}

func NewJournalHandler(journal service.IJournalService, photos service.IPhotoService, limiter *middleware.RateLimiter, log *zap.Logger) *JournalHandler {
	return &JournalHandler{
		journal: journal,
		photos:  photos,
		limiter: limiter,
		log:     log,
	}
}

func (h *JournalHandler) RegisterRoutes(router *gin.RouterGroup) {
	journal := router.Group("/journal")
	{
		journal.GET("", h.ListEntries)
		journal.POST("", h.SaveEntry)
		journal.GET("/:id", h.GetEntry)
		journal.PUT("/:id", h.UpdateEntry)
		journal.DELETE("/:id", h.DeleteEntry)
		journal.POST("/:id/cooked", h.RecordCooked)
		if h.limiter != nil {
			journal.POST("/:id/photo", h.limiter.RateLimitMiddleware(), h.UploadPhoto)
		} else {
			journal.POST("/:id/photo", h.UploadPhoto)
		}
	}
}

// respondJournalError maps journal errors to responses.
func (h *JournalHandler) respondJournalError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, service.ErrJournalEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "journal entry not found"})
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
	case errors.Is(err, service.ErrInvalidRating):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPhotoTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnsupportedPhoto):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
	default:
		h.log.Error("Journal request failed", zap.String("action", action), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + action})
	}
}

func entryID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "journal entry not found"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *JournalHandler) ListEntries(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	filters := models.JournalFilters{
		FavoritesOnly: c.Query("filter") == "favorites",
		Limit:         queryInt(c, "limit", 0),
		Offset:        queryInt(c, "offset", 0),
	}
	entries, err := h.journal.List(c.Request.Context(), userID, filters)
	if err != nil {
		h.respondJournalError(c, err, "list journal entries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *JournalHandler) SaveEntry(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.SaveJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.journal.Save(c.Request.Context(), userID, req.RecipeID, req.Rating, req.Notes)
	if err != nil {
		h.respondJournalError(c, err, "save journal entry")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *JournalHandler) GetEntry(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := entryID(c)
	if !ok {
		return
	}

	entry, err := h.journal.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.respondJournalError(c, err, "get journal entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *JournalHandler) UpdateEntry(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := entryID(c)
	if !ok {
		return
	}
	var req types.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.journal.Update(c.Request.Context(), userID, id, req.Rating, req.Notes)
	if err != nil {
		h.respondJournalError(c, err, "update journal entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *JournalHandler) DeleteEntry(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := entryID(c)
	if !ok {
		return
	}

	if err := h.journal.Delete(c.Request.Context(), userID, id); err != nil {
		h.respondJournalError(c, err, "delete journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JournalHandler) RecordCooked(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := entryID(c)
	if !ok {
		return
	}

	entry, err := h.journal.RecordCooked(c.Request.Context(), userID, id)
	if err != nil {
		h.respondJournalError(c, err, "record cooked recipe")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// UploadPhoto accepts a multipart form with a single "photo" file.
func (h *JournalHandler) UploadPhoto(c *gin.Context) {
	if h.photos == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo storage is not configured"})
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := entryID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	defer file.Close()

	// Read one byte past the cap so oversized files are detected.
	data, err := io.ReadAll(io.LimitReader(file, service.MaxPhotoSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read photo"})
		return
	}

	entry, err := h.photos.Upload(c.Request.Context(), userID, id, data, header.Header.Get("Content-Type"))
	if err != nil {
		h.respondJournalError(c, err, "upload photo")
		return
	}
	c.JSON(http.StatusOK, entry)
}
