package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/internal/recommend"
	"github.com/pageza/pantrypal/backend/internal/session"
	"github.com/pageza/pantrypal/backend/internal/types"
)

// RecommendationService ranks the catalog against a pantry and mood filter.
type RecommendationService struct {
	catalog RecipeCatalog
	engine  *recommend.Engine
	cache   RankingCache
	log     *zap.Logger
}

var _ IRecommendationService = (*RecommendationService)(nil)

// NewRecommendationService creates a new RecommendationService. cache may be
// nil, in which case every call ranks from scratch.
func NewRecommendationService(catalog RecipeCatalog, engine *recommend.Engine, cache RankingCache, log *zap.Logger) *RecommendationService {
	return &RecommendationService{catalog: catalog, engine: engine, cache: cache, log: log}
}

// Recommend ranks the catalog for an ad hoc pantry and mood filter.
func (s *RecommendationService) Recommend(ctx context.Context, pantry []string, moods []types.MoodTag) ([]types.RecipeSummary, error) {
	recipes, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return s.engine.Rank(recipes, pantry, moods), nil
}

// RecommendForSession ranks against a snapshot of the session. A cached
// ranking is used only when it was computed at the snapshot's revision.
func (s *RecommendationService) RecommendForSession(ctx context.Context, sess *session.Session) ([]types.RecipeSummary, error) {
	snap := sess.Snapshot()
	if s.cache != nil {
		if ranked, ok := s.cache.Get(ctx, sess.Key(), snap.Revision); ok {
			return ranked, nil
		}
	}

	ranked, err := s.Recommend(ctx, snap.Pantry, snap.Moods)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, sess.Key(), snap.Revision, ranked)
	}
	return ranked, nil
}

// ClearCache drops the cached rankings of every session.
func (s *RecommendationService) ClearCache(ctx context.Context) {
	if s.cache != nil {
		s.cache.Clear(ctx)
	}
}

// Invalidate drops any cached ranking of the session.
func (s *RecommendationService) Invalidate(ctx context.Context, sessionKey string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, sessionKey)
	}
}
