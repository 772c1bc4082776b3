// Package retrieval implements the study-material context provider: a
// repository-backed retriever with a Redis cache in front. Every failure
// path degrades to an empty result so a retrieval outage reads as
// "insufficient content" instead of a crashed request.
package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"dcet-prep/internal/cache"
	"dcet-prep/internal/domain"
	"dcet-prep/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const contextCacheTTL = 10 * time.Minute

// CachedRetriever implements domain.ContextRetriever.
type CachedRetriever struct {
	repo    repository.MaterialRepository
	cache   domain.Cache // may be nil when Redis is not configured
	sfGroup singleflight.Group
	logger  *zap.Logger
}

func NewCachedRetriever(repo repository.MaterialRepository, cacheAdapter domain.Cache, logger *zap.Logger) *CachedRetriever {
	return &CachedRetriever{
		repo:   repo,
		cache:  cacheAdapter,
		logger: logger,
	}
}

// Retrieve returns up to topK chunks for the subject/unit. Cache misses and
// cache errors fall through to the repository; repository errors yield an
// empty result.
func (r *CachedRetriever) Retrieve(ctx context.Context, subjectID, unitID int64, topK int) []domain.Chunk {
	key := retrievalKey(subjectID, unitID, topK)

	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, key); err == nil {
			var texts []string
			if err := json.Unmarshal([]byte(cached), &texts); err == nil {
				return toChunks(texts)
			}
			r.logger.Warn("Discarding undecodable retrieval cache entry", zap.String("key", key))
		} else if err != domain.ErrCacheMiss {
			r.logger.Warn("Retrieval cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	// Collapse concurrent identical retrievals into one repository read.
	v, err, _ := r.sfGroup.Do(key, func() (interface{}, error) {
		rows, err := r.repo.GetTopChunks(ctx, subjectID, unitID, topK)
		if err != nil {
			return nil, err
		}
		texts := make([]string, 0, len(rows))
		for _, row := range rows {
			texts = append(texts, row.Content)
		}
		return texts, nil
	})
	if err != nil {
		r.logger.Warn("Material retrieval failed; treating as empty",
			zap.Int64("subject_id", subjectID),
			zap.Int64("unit_id", unitID),
			zap.Error(err))
		return nil
	}

	texts := v.([]string)
	if r.cache != nil && len(texts) > 0 {
		if encoded, err := json.Marshal(texts); err == nil {
			if err := r.cache.Set(ctx, key, string(encoded), contextCacheTTL); err != nil {
				r.logger.Warn("Retrieval cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return toChunks(texts)
}

func retrievalKey(subjectID, unitID int64, topK int) string {
	return cache.GenerateCacheKey("retrieval", "context",
		fmt.Sprintf("%d_%d", subjectID, unitID), strconv.Itoa(topK))
}

func toChunks(texts []string) []domain.Chunk {
	chunks := make([]domain.Chunk, 0, len(texts))
	for _, t := range texts {
		chunks = append(chunks, domain.Chunk{Text: t})
	}
	return chunks
}

var _ domain.ContextRetriever = (*CachedRetriever)(nil)
