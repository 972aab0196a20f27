package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrypal/backend/internal/api"
	"github.com/pageza/pantrypal/backend/internal/catalog"
	"github.com/pageza/pantrypal/backend/internal/database"
	"github.com/pageza/pantrypal/backend/internal/middleware"
	"github.com/pageza/pantrypal/backend/internal/models"
	"github.com/pageza/pantrypal/backend/internal/realtime"
	"github.com/pageza/pantrypal/backend/internal/recommend"
	"github.com/pageza/pantrypal/backend/internal/service"
	"github.com/pageza/pantrypal/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv is the full API over an in-memory database holding the built-in
// catalog. Photo storage is not configured.
type testEnv struct {
	router  *gin.Engine
	db      *gorm.DB
	auth    *service.AuthService
	catalog *service.CatalogService
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	log := zap.NewNop()
	db := testhelpers.SetupTestDatabase(t)

	catalogSvc := service.NewCatalogService(db, log)
	recipes, err := catalog.Default()
	require.NoError(t, err)
	_, err = catalogSvc.Seed(context.Background(), recipes)
	require.NoError(t, err)

	authSvc := service.NewAuthService(db, "test-secret")
	recommendations := service.NewRecommendationService(catalogSvc, recommend.NewEngine(log), nil, log)
	hub := realtime.NewHub(log)
	journal := service.NewJournalService(db, catalogSvc, log)

	router := gin.New()
	router.Use(middleware.ErrorHandler(log))
	api.RegisterRoutes(router, api.Services{
		Auth:            authSvc,
		Recommendations: recommendations,
		Details:         service.NewDetailService(catalogSvc, log),
		Sessions:        service.NewSessionService(db, recommendations, hub, log),
		Planner:         service.NewPlannerService(catalogSvc),
		Journal:         journal,
		Hub:             hub,
		Health:          func(ctx context.Context) error { return database.HealthCheck(ctx, db) },
		Log:             log,
	})

	return &testEnv{router: router, db: db, auth: authSvc, catalog: catalogSvc}
}

// createUser stores a user and returns its id and a valid token.
func (e *testEnv) createUser(t *testing.T, name string) (uuid.UUID, string) {
	t.Helper()
	user, err := e.auth.Register(context.Background(), name, fmt.Sprintf("%s@example.com", name), "password123")
	require.NoError(t, err)
	token, err := e.auth.GenerateToken(user)
	require.NoError(t, err)
	return user.ID, token
}

func (e *testEnv) recipeID(t *testing.T, title string) uuid.UUID {
	t.Helper()
	recipes, err := e.catalog.List(context.Background())
	require.NoError(t, err)
	for _, r := range recipes {
		if r.Title == title {
			return r.ID
		}
	}
	t.Fatalf("recipe %q not in catalog", title)
	return uuid.Nil
}

// performRequest is a helper function to make HTTP requests in tests. An
// empty token sends no Authorization header.
func performRequest(router http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

type recipesResponse struct {
	Recipes []struct {
		ID              uuid.UUID `json:"id"`
		Title           string    `json:"title"`
		MatchPercentage int       `json:"match_percentage"`
	} `json:"recipes"`
}

func (r recipesResponse) titles() []string {
	out := make([]string, len(r.Recipes))
	for i, rec := range r.Recipes {
		out[i] = rec.Title
	}
	return out
}

type sessionResponse struct {
	Revision int64    `json:"revision"`
	Pantry   []string `json:"pantry"`
	Moods    []string `json:"moods"`
	Changed  *bool    `json:"changed"`
}

type journalList struct {
	Entries []models.JournalEntry `json:"entries"`
}
