package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/pantrypal/backend/internal/models"
	"github.com/pageza/pantrypal/backend/internal/service"
)

// MockJournalService is a mock implementation of IJournalService
type MockJournalService struct {
	mock.Mock
}

var _ service.IJournalService = (*MockJournalService)(nil)

func entryResult(args mock.Arguments) (*models.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JournalEntry), args.Error(1)
}

func (m *MockJournalService) Save(ctx context.Context, userID, recipeID uuid.UUID, rating int, notes string) (*models.JournalEntry, error) {
	return entryResult(m.Called(ctx, userID, recipeID, rating, notes))
}

func (m *MockJournalService) List(ctx context.Context, userID uuid.UUID, filters models.JournalFilters) ([]models.JournalEntry, error) {
	args := m.Called(ctx, userID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.JournalEntry), args.Error(1)
}

func (m *MockJournalService) Get(ctx context.Context, userID, id uuid.UUID) (*models.JournalEntry, error) {
	return entryResult(m.Called(ctx, userID, id))
}

func (m *MockJournalService) Update(ctx context.Context, userID, id uuid.UUID, rating *int, notes *string) (*models.JournalEntry, error) {
	return entryResult(m.Called(ctx, userID, id, rating, notes))
}

func (m *MockJournalService) RecordCooked(ctx context.Context, userID, id uuid.UUID) (*models.JournalEntry, error) {
	return entryResult(m.Called(ctx, userID, id))
}

func (m *MockJournalService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

// MockPhotoService is a mock implementation of IPhotoService
type MockPhotoService struct {
	mock.Mock
}

var _ service.IPhotoService = (*MockPhotoService)(nil)

func (m *MockPhotoService) Upload(ctx context.Context, userID, entryID uuid.UUID, data []byte, contentType string) (*models.JournalEntry, error) {
	return entryResult(m.Called(ctx, userID, entryID, data, contentType))
}
