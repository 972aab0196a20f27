package database_test

import (
	"context"
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/config"
	"github.com/pageza/pantrypal/backend/internal/database"
	"github.com/pageza/pantrypal/backend/internal/models"
	"github.com/pageza/pantrypal/backend/internal/testhelpers"
)

func TestOpenSQLite(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", SQLitePath: ":memory:"}

	db, err := database.Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer database.Close(db)

	assert.NoError(t, database.HealthCheck(context.Background(), db))
	for _, table := range []string{"users", "recipes", "journal_entries", "session_documents"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	user := models.User{Username: "cook", Email: "cook@example.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(&user).Error)
	assert.NotEqual(t, uuid.Nil, user.ID)

	require.NoError(t, database.MigrateDown(db))
	assert.False(t, db.Migrator().HasTable("users"))
}

func TestPostgresMigrations(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)

	for _, table := range []string{"users", "recipes", "journal_entries", "session_documents"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	recipe := models.Recipe{
		Title:       "Toast",
		CookTime:    5,
		Servings:    1,
		Tags:        models.JSONBStringArray{"quick"},
		Ingredients: models.JSONList[models.RecipeIngredient]{{Name: "Bread", Quantity: "2 slices"}},
	}
	require.NoError(t, db.Create(&recipe).Error)

	var got models.Recipe
	require.NoError(t, db.First(&got, "id = ?", recipe.ID).Error)
	assert.Equal(t, recipe.Ingredients, got.Ingredients)
	assert.Empty(t, got.Steps)

	// Running again is a no-op.
	require.NoError(t, database.Migrate(db, zap.NewNop()))

	require.NoError(t, database.MigrateDown(db))
	assert.False(t, db.Migrator().HasTable("recipes"))
}

func TestNewRedisClient(t *testing.T) {
	_, err := database.NewRedisClient(context.Background(), &config.Config{RedisURL: "not a url"}, zap.NewNop())
	require.Error(t, err)

	addr := testhelpers.SetupRedis(t).Options().Addr
	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)

	client, err := database.NewRedisClient(context.Background(), &config.Config{RedisHost: host, RedisPort: port}, zap.NewNop())
	require.NoError(t, err)
	defer client.Close()
	assert.NoError(t, client.Set(context.Background(), "ping", "pong", 0).Err())
}
