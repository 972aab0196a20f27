package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/pantrypal/backend/internal/models"
	"github.com/pageza/pantrypal/backend/internal/session"
	"github.com/pageza/pantrypal/backend/internal/shopping"
	"github.com/pageza/pantrypal/backend/internal/types"
)

// RecipeCatalog is the read side of the recipe catalog.
type RecipeCatalog interface {
	List(ctx context.Context) ([]models.Recipe, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
}

// RankingCache stores ranked results per session, stamped with the session
// revision they were computed at.
type RankingCache interface {
	Get(ctx context.Context, sessionKey string, revision int64) ([]types.RecipeSummary, bool)
	Set(ctx context.Context, sessionKey string, revision int64, recipes []types.RecipeSummary)
	Invalidate(ctx context.Context, sessionKey string)
	// Clear drops every cached ranking, for when the catalog changes.
	Clear(ctx context.Context)
}

// EventPublisher forwards session changes to observers.
type EventPublisher interface {
	Publish(sessionKey string, payload any)
}

// PhotoStore persists uploaded journal photos and returns their public URL.
type PhotoStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IRecommendationService ranks the catalog for a pantry and mood filter
type IRecommendationService interface {
	Recommend(ctx context.Context, pantry []string, moods []types.MoodTag) ([]types.RecipeSummary, error)
	RecommendForSession(ctx context.Context, sess *session.Session) ([]types.RecipeSummary, error)
}

// IDetailService resolves recipe detail views
type IDetailService interface {
	Resolve(ctx context.Context, id uuid.UUID, pantry []string, servings, spice int) (*types.RecipeDetail, error)
}

// ISessionService hands out live sessions
type ISessionService interface {
	Get(ctx context.Context, key string) (*session.Session, error)
	Message(sess *session.Session, ev *session.Event) SessionMessage
}

// IPlannerService edits the meal plan of a session
type IPlannerService interface {
	Assign(ctx context.Context, sess *session.Session, day types.Day, meal types.MealType, recipeID uuid.UUID, servings int) error
	Clear(ctx context.Context, sess *session.Session, day types.Day, meal types.MealType) error
	ShoppingList(ctx context.Context, sess *session.Session) ([]shopping.Item, error)
}

// IJournalService defines the interface for journal operations
type IJournalService interface {
	Save(ctx context.Context, userID, recipeID uuid.UUID, rating int, notes string) (*models.JournalEntry, error)
	List(ctx context.Context, userID uuid.UUID, filters models.JournalFilters) ([]models.JournalEntry, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*models.JournalEntry, error)
	Update(ctx context.Context, userID, id uuid.UUID, rating *int, notes *string) (*models.JournalEntry, error)
	RecordCooked(ctx context.Context, userID, id uuid.UUID) (*models.JournalEntry, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// IPhotoService uploads journal photos
type IPhotoService interface {
	Upload(ctx context.Context, userID, entryID uuid.UUID, data []byte, contentType string) (*models.JournalEntry, error)
}
