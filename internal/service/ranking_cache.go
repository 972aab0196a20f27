package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/pantrypal/backend/internal/types"
)

const rankingKeyPrefix = "ranking:"

type rankingEntry struct {
	Revision int64                 `json:"revision"`
	Recipes  []types.RecipeSummary `json:"recipes"`
}

// RedisRankingCache keeps ranked recommendations in Redis. Every failure is
// treated as a miss.
type RedisRankingCache struct {
	redis *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

var _ RankingCache = (*RedisRankingCache)(nil)

func NewRedisRankingCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisRankingCache {
	return &RedisRankingCache{redis: client, ttl: ttl, log: log}
}

// Get returns the cached ranking only if it was computed at revision.
func (c *RedisRankingCache) Get(ctx context.Context, sessionKey string, revision int64) ([]types.RecipeSummary, bool) {
	data, err := c.redis.Get(ctx, rankingKeyPrefix+sessionKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Ranking cache read failed", zap.String("session", sessionKey), zap.Error(err))
		}
		return nil, false
	}

	var entry rankingEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.log.Warn("Discarding corrupt ranking cache entry", zap.String("session", sessionKey), zap.Error(err))
		return nil, false
	}
	if entry.Revision != revision {
		return nil, false
	}
	if entry.Recipes == nil {
		entry.Recipes = []types.RecipeSummary{}
	}
	return entry.Recipes, true
}

func (c *RedisRankingCache) Set(ctx context.Context, sessionKey string, revision int64, recipes []types.RecipeSummary) {
	data, err := json.Marshal(rankingEntry{Revision: revision, Recipes: recipes})
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, rankingKeyPrefix+sessionKey, data, c.ttl).Err(); err != nil {
		c.log.Warn("Ranking cache write failed", zap.String("session", sessionKey), zap.Error(err))
	}
}

func (c *RedisRankingCache) Invalidate(ctx context.Context, sessionKey string) {
	if err := c.redis.Del(ctx, rankingKeyPrefix+sessionKey).Err(); err != nil {
		c.log.Warn("Ranking cache invalidation failed", zap.String("session", sessionKey), zap.Error(err))
	}
}

// Clear deletes every ranking key. Rankings are stamped with session
// revisions only, so a catalog change has to flush them all.
func (c *RedisRankingCache) Clear(ctx context.Context) {
	var keys []string
	iter := c.redis.Scan(ctx, 0, rankingKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("Ranking cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("Ranking cache clear failed", zap.Int("keys", len(keys)), zap.Error(err))
		return
	}
	c.log.Info("Ranking cache cleared", zap.Int("keys", len(keys)))
}
