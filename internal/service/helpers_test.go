package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrypal/backend/internal/catalog"
	"github.com/pageza/pantrypal/backend/internal/models"
	"github.com/pageza/pantrypal/backend/internal/service"
	"github.com/pageza/pantrypal/backend/internal/testhelpers"
	"github.com/pageza/pantrypal/backend/internal/types"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

// seededCatalog returns a database holding the built-in catalog.
func seededCatalog(t *testing.T) (*gorm.DB, *service.CatalogService) {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewCatalogService(db, zap.NewNop())

	recipes, err := catalog.Default()
	require.NoError(t, err)
	_, err = svc.Seed(context.Background(), recipes)
	require.NoError(t, err)
	return db, svc
}

func recipeByTitle(t *testing.T, svc *service.CatalogService, title string) *models.Recipe {
	t.Helper()
	recipes, err := svc.List(context.Background())
	require.NoError(t, err)
	for i := range recipes {
		if recipes[i].Title == title {
			return &recipes[i]
		}
	}
	t.Fatalf("recipe %q not in catalog", title)
	return nil
}

func titles(summaries []types.RecipeSummary) []string {
	out := make([]string, len(summaries))
	for i, s := range summaries {
		out[i] = s.Title
	}
	return out
}

type memoryCache struct {
	mu          sync.Mutex
	entries     map[string]cacheEntry
	gets        int
	hits        int
	invalidated []string
	clears      int
}

type cacheEntry struct {
	revision int64
	recipes  []types.RecipeSummary
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]cacheEntry)}
}

func (c *memoryCache) Get(_ context.Context, key string, revision int64) ([]types.RecipeSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	e, ok := c.entries[key]
	if !ok || e.revision != revision {
		return nil, false
	}
	c.hits++
	return e.recipes, true
}

func (c *memoryCache) Set(_ context.Context, key string, revision int64, recipes []types.RecipeSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{revision: revision, recipes: recipes}
}

func (c *memoryCache) Invalidate(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.invalidated = append(c.invalidated, key)
}

func (c *memoryCache) Clear(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
	c.clears++
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []service.SessionMessage
}

func (p *recordingPublisher) Publish(_ string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, payload.(service.SessionMessage))
}
