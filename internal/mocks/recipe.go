package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/pantrypal/backend/internal/service"
	"github.com/pageza/pantrypal/backend/internal/session"
	"github.com/pageza/pantrypal/backend/internal/types"
)

// MockRecommendationService is a mock implementation of IRecommendationService
type MockRecommendationService struct {
	mock.Mock
}

var _ service.IRecommendationService = (*MockRecommendationService)(nil)

func (m *MockRecommendationService) Recommend(ctx context.Context, pantry []string, moods []types.MoodTag) ([]types.RecipeSummary, error) {
	args := m.Called(ctx, pantry, moods)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeSummary), args.Error(1)
}

func (m *MockRecommendationService) RecommendForSession(ctx context.Context, sess *session.Session) ([]types.RecipeSummary, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeSummary), args.Error(1)
}

// MockDetailService is a mock implementation of IDetailService
type MockDetailService struct {
	mock.Mock
}

var _ service.IDetailService = (*MockDetailService)(nil)

func (m *MockDetailService) Resolve(ctx context.Context, id uuid.UUID, pantry []string, servings, spice int) (*types.RecipeDetail, error) {
	args := m.Called(ctx, id, pantry, servings, spice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeDetail), args.Error(1)
}
