package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantrypal/backend/internal/catalog"
	"github.com/pageza/pantrypal/backend/internal/service"
)

func TestCatalogService(t *testing.T) {
	_, svc := seededCatalog(t)
	ctx := testContext(t)

	recipes, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 6)
	assert.Equal(t, "Creamy Tomato Basil Pasta", recipes[0].Title)
	assert.Equal(t, "Classic Beef Tacos", recipes[5].Title)

	got, err := svc.Get(ctx, recipes[2].ID)
	require.NoError(t, err)
	assert.Equal(t, recipes[2].Title, got.Title)
	assert.Len(t, got.Ingredients, 7)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 6, n)

	lookup, err := svc.Lookup(ctx)
	require.NoError(t, err)
	r, ok := lookup(recipes[0].ID)
	require.True(t, ok)
	assert.Equal(t, recipes[0].Title, r.Title)
}

func TestCatalogReseedKeepsIDs(t *testing.T) {
	_, svc := seededCatalog(t)
	ctx := testContext(t)

	before, err := svc.List(ctx)
	require.NoError(t, err)

	again, err := catalog.Default()
	require.NoError(t, err)
	again[0].CookTime = 99

	created, err := svc.Seed(ctx, again)
	require.NoError(t, err)
	assert.Zero(t, created)

	after, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
	}
	assert.Equal(t, 99, after[0].CookTime)
}
