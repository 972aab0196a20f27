package api_test

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/internal/api"
	"github.com/pageza/pantrypal/backend/internal/middleware"
	"github.com/pageza/pantrypal/backend/internal/mocks"
	"github.com/pageza/pantrypal/backend/internal/models"
	"github.com/pageza/pantrypal/backend/internal/service"
	"github.com/pageza/pantrypal/backend/internal/types"
)

func TestJournalEndpoints(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createUser(t, "cook")
	tacos := env.recipeID(t, "Classic Beef Tacos")
	bowl := env.recipeID(t, "Healthy Buddha Bowl")

	w := performRequest(env.router, http.MethodPost, "/api/v1/journal", map[string]interface{}{
		"recipe_id": tacos, "rating": 5, "notes": "family favorite",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var entry models.JournalEntry
	decode(t, w, &entry)
	assert.Equal(t, "Classic Beef Tacos", entry.RecipeTitle)

	w = performRequest(env.router, http.MethodPost, "/api/v1/journal", map[string]interface{}{
		"recipe_id": bowl, "rating": 3,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(env.router, http.MethodPost, "/api/v1/journal", map[string]interface{}{
		"recipe_id": bowl, "rating": 7,
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(env.router, http.MethodPost, "/api/v1/journal", map[string]interface{}{
		"recipe_id": uuid.New(), "rating": 4,
	}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var list journalList
	w = performRequest(env.router, http.MethodGet, "/api/v1/journal", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &list)
	assert.Len(t, list.Entries, 2)

	w = performRequest(env.router, http.MethodGet, "/api/v1/journal?filter=favorites", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &list)
	require.Len(t, list.Entries, 1)
	assert.Equal(t, entry.ID, list.Entries[0].ID)

	path := "/api/v1/journal/" + entry.ID.String()
	w = performRequest(env.router, http.MethodGet, path, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(env.router, http.MethodPut, path, map[string]interface{}{"notes": "add lime"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &entry)
	assert.Equal(t, "add lime", entry.Notes)
	assert.Equal(t, 5, entry.Rating)

	w = performRequest(env.router, http.MethodPost, path+"/cooked", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &entry)
	assert.Equal(t, 1, entry.CookedCount)

	// Without photo storage the upload endpoint is unavailable.
	w = performRequest(env.router, http.MethodPost, path+"/photo", nil, token)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// Other users cannot see the entry.
	_, other := env.createUser(t, "other")
	w = performRequest(env.router, http.MethodGet, path, nil, other)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = performRequest(env.router, http.MethodDelete, path, nil, other)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(env.router, http.MethodDelete, path, nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = performRequest(env.router, http.MethodGet, path, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(env.router, http.MethodGet, "/api/v1/journal/not-a-uuid", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// journalRouter mounts the journal handler behind a stub authentication
// step that always signs in userID.
func journalRouter(journal service.IJournalService, photos service.IPhotoService, userID uuid.UUID) *gin.Engine {
	router := gin.New()
	group := router.Group("/api/v1")
	group.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	})
	api.NewJournalHandler(journal, photos, nil, zap.NewNop()).RegisterRoutes(group)
	return router
}

func photoRequest(t *testing.T, path, contentType string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="photo"; filename="dinner.png"`)
	header.Set("Content-Type", contentType)
	part, err := form.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	return req
}

func TestJournalPhotoUpload(t *testing.T) {
	userID, entryID := uuid.New(), uuid.New()
	png := []byte("\x89PNG\r\n\x1a\n")
	path := "/api/v1/journal/" + entryID.String() + "/photo"

	photos := new(mocks.MockPhotoService)
	photos.On("Upload", mock.Anything, userID, entryID, png, "image/png").
		Return(&models.JournalEntry{ID: entryID, PhotoURL: "https://photos.example.com/x.png"}, nil).Once()
	photos.On("Upload", mock.Anything, userID, entryID, png, "image/gif").
		Return(nil, service.ErrUnsupportedPhoto).Once()

	router := journalRouter(new(mocks.MockJournalService), photos, userID)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, photoRequest(t, path, "image/png", png))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var entry models.JournalEntry
	decode(t, w, &entry)
	assert.Equal(t, "https://photos.example.com/x.png", entry.PhotoURL)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, photoRequest(t, path, "image/gif", png))
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	// No file part at all.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	photos.AssertExpectations(t)
}

func TestJournalServiceFailure(t *testing.T) {
	userID := uuid.New()
	journal := new(mocks.MockJournalService)
	journal.On("List", mock.Anything, userID, models.JournalFilters{FavoritesOnly: true, Limit: 10}).
		Return(nil, errors.New("connection reset"))
	rating := 4
	journal.On("Update", mock.Anything, userID, mock.Anything, &rating, (*string)(nil)).
		Return(nil, service.ErrInvalidRating)

	router := journalRouter(journal, nil, userID)

	w := performRequest(router, http.MethodGet, "/api/v1/journal?filter=favorites&limit=10", nil, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"failed to list journal entries"}`, w.Body.String())

	w = performRequest(router, http.MethodPut, "/api/v1/journal/"+uuid.NewString(), types.UpdateJournalRequest{Rating: &rating}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	journal.AssertExpectations(t)
}
