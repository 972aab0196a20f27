package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/internal/models"
	"github.com/pageza/pantrypal/backend/internal/service"
)

func newJournal(t *testing.T) (*service.JournalService, *service.CatalogService, uuid.UUID) {
	t.Helper()
	db, catalogSvc := seededCatalog(t)
	user := models.User{Username: "cook", Email: "cook@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return service.NewJournalService(db, catalogSvc, zap.NewNop()), catalogSvc, user.ID
}

func TestJournalSave(t *testing.T) {
	svc, catalogSvc, userID := newJournal(t)
	ctx := testContext(t)
	pasta := recipeByTitle(t, catalogSvc, "Creamy Tomato Basil Pasta")

	entry, err := svc.Save(ctx, userID, pasta.ID, 4, "  needs more garlic ")
	require.NoError(t, err)
	assert.Equal(t, pasta.Title, entry.RecipeTitle)
	assert.Equal(t, pasta.CookTime, entry.RecipeCookTime)
	assert.Equal(t, "needs more garlic", entry.Notes)

	again, err := svc.Save(ctx, userID, pasta.ID, 5, "perfect")
	require.NoError(t, err)
	assert.Equal(t, entry.ID, again.ID)
	assert.Equal(t, 5, again.Rating)

	entries, err := svc.List(ctx, userID, models.JournalFilters{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "perfect", entries[0].Notes)

	_, err = svc.Save(ctx, userID, pasta.ID, 6, "")
	assert.ErrorIs(t, err, service.ErrInvalidRating)
	_, err = svc.Save(ctx, userID, pasta.ID, 0, "")
	assert.ErrorIs(t, err, service.ErrInvalidRating)
	_, err = svc.Save(ctx, userID, uuid.New(), 3, "")
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)
}

func TestJournalListFavorites(t *testing.T) {
	svc, catalogSvc, userID := newJournal(t)
	ctx := testContext(t)

	_, err := svc.Save(ctx, userID, recipeByTitle(t, catalogSvc, "Classic Beef Tacos").ID, 5, "")
	require.NoError(t, err)
	_, err = svc.Save(ctx, userID, recipeByTitle(t, catalogSvc, "Healthy Buddha Bowl").ID, 3, "")
	require.NoError(t, err)

	all, err := svc.List(ctx, userID, models.JournalFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	favorites, err := svc.List(ctx, userID, models.JournalFilters{FavoritesOnly: true})
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Classic Beef Tacos", favorites[0].RecipeTitle)

	limited, err := svc.List(ctx, userID, models.JournalFilters{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := svc.List(ctx, uuid.New(), models.JournalFilters{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestJournalUpdateCookedDelete(t *testing.T) {
	svc, catalogSvc, userID := newJournal(t)
	ctx := testContext(t)
	entry, err := svc.Save(ctx, userID, recipeByTitle(t, catalogSvc, "Healthy Buddha Bowl").ID, 3, "ok")
	require.NoError(t, err)

	rating := 5
	updated, err := svc.Update(ctx, userID, entry.ID, &rating, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "ok", updated.Notes)

	notes := "great with extra tahini"
	updated, err = svc.Update(ctx, userID, entry.ID, nil, &notes)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, notes, updated.Notes)

	bad := 9
	_, err = svc.Update(ctx, userID, entry.ID, &bad, nil)
	assert.ErrorIs(t, err, service.ErrInvalidRating)

	cooked, err := svc.RecordCooked(ctx, userID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cooked.CookedCount)
	cooked, err = svc.RecordCooked(ctx, userID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, cooked.CookedCount)

	stranger := uuid.New()
	_, err = svc.Get(ctx, stranger, entry.ID)
	assert.ErrorIs(t, err, service.ErrJournalEntryNotFound)
	_, err = svc.RecordCooked(ctx, stranger, entry.ID)
	assert.ErrorIs(t, err, service.ErrJournalEntryNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, stranger, entry.ID), service.ErrJournalEntryNotFound)

	require.NoError(t, svc.Delete(ctx, userID, entry.ID))
	_, err = svc.Get(ctx, userID, entry.ID)
	assert.ErrorIs(t, err, service.ErrJournalEntryNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, userID, entry.ID), service.ErrJournalEntryNotFound)
}
