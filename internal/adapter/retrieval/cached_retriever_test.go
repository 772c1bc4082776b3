package retrieval

import (
	"context"
	"errors"
	"testing"
	"time"

	"dcet-prep/internal/adapter"
	"dcet-prep/internal/repository/models"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockMaterialRepository struct {
	mock.Mock
}

func (m *MockMaterialRepository) GetTopChunks(ctx context.Context, subjectID, unitID int64, limit int) ([]models.MaterialChunk, error) {
	args := m.Called(ctx, subjectID, unitID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MaterialChunk), args.Error(1)
}

func (m *MockMaterialRepository) SaveChunks(ctx context.Context, subjectID, unitID int64, contents []string) error {
	args := m.Called(ctx, subjectID, unitID, contents)
	return args.Error(0)
}

const testKey = "dcetprep:retrieval:context:1_2:40"

func TestCachedRetriever_CacheHit(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	repo := new(MockMaterialRepository)
	retriever := NewCachedRetriever(repo, adapter.NewRedisCacheAdapter(db), zap.NewNop())

	redisMock.ExpectGet(testKey).SetVal(`["alpha","beta"]`)

	chunks := retriever.Retrieve(context.Background(), 1, 2, 40)

	require.Len(t, chunks, 2)
	assert.Equal(t, "alpha", chunks[0].Text)
	repo.AssertNotCalled(t, "GetTopChunks", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCachedRetriever_CacheMissFallsThroughAndPopulates(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	repo := new(MockMaterialRepository)
	retriever := NewCachedRetriever(repo, adapter.NewRedisCacheAdapter(db), zap.NewNop())

	redisMock.ExpectGet(testKey).RedisNil()
	repo.On("GetTopChunks", mock.Anything, int64(1), int64(2), 40).
		Return([]models.MaterialChunk{{Content: "alpha"}, {Content: "beta"}}, nil)
	redisMock.ExpectSet(testKey, `["alpha","beta"]`, 10*time.Minute).SetVal("OK")

	chunks := retriever.Retrieve(context.Background(), 1, 2, 40)

	require.Len(t, chunks, 2)
	assert.Equal(t, "beta", chunks[1].Text)
	repo.AssertExpectations(t)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCachedRetriever_RepositoryErrorYieldsEmpty(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	repo := new(MockMaterialRepository)
	retriever := NewCachedRetriever(repo, adapter.NewRedisCacheAdapter(db), zap.NewNop())

	redisMock.ExpectGet(testKey).RedisNil()
	repo.On("GetTopChunks", mock.Anything, int64(1), int64(2), 40).
		Return(nil, errors.New("connection reset"))

	chunks := retriever.Retrieve(context.Background(), 1, 2, 40)

	assert.Empty(t, chunks)
}

func TestCachedRetriever_CacheErrorFallsThrough(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	repo := new(MockMaterialRepository)
	retriever := NewCachedRetriever(repo, adapter.NewRedisCacheAdapter(db), zap.NewNop())

	redisMock.ExpectGet(testKey).SetErr(errors.New("redis down"))
	repo.On("GetTopChunks", mock.Anything, int64(1), int64(2), 40).
		Return([]models.MaterialChunk{{Content: "alpha"}}, nil)
	redisMock.ExpectSet(testKey, `["alpha"]`, 10*time.Minute).SetVal("OK")

	chunks := retriever.Retrieve(context.Background(), 1, 2, 40)

	require.Len(t, chunks, 1)
	assert.Equal(t, "alpha", chunks[0].Text)
}

func TestCachedRetriever_CorruptCacheEntryFallsThrough(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	repo := new(MockMaterialRepository)
	retriever := NewCachedRetriever(repo, adapter.NewRedisCacheAdapter(db), zap.NewNop())

	redisMock.ExpectGet(testKey).SetVal("not json")
	repo.On("GetTopChunks", mock.Anything, int64(1), int64(2), 40).
		Return([]models.MaterialChunk{{Content: "alpha"}}, nil)
	redisMock.ExpectSet(testKey, `["alpha"]`, 10*time.Minute).SetVal("OK")

	chunks := retriever.Retrieve(context.Background(), 1, 2, 40)

	require.Len(t, chunks, 1)
	repo.AssertExpectations(t)
}

func TestCachedRetriever_NoCacheConfigured(t *testing.T) {
	repo := new(MockMaterialRepository)
	retriever := NewCachedRetriever(repo, nil, zap.NewNop())

	repo.On("GetTopChunks", mock.Anything, int64(1), int64(2), 40).
		Return([]models.MaterialChunk{{Content: "alpha"}}, nil)

	chunks := retriever.Retrieve(context.Background(), 1, 2, 40)

	require.Len(t, chunks, 1)
	repo.AssertExpectations(t)
}

func TestCachedRetriever_EmptyResultNotCached(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	repo := new(MockMaterialRepository)
	retriever := NewCachedRetriever(repo, adapter.NewRedisCacheAdapter(db), zap.NewNop())

	redisMock.ExpectGet(testKey).RedisNil()
	repo.On("GetTopChunks", mock.Anything, int64(1), int64(2), 40).
		Return([]models.MaterialChunk{}, nil)

	chunks := retriever.Retrieve(context.Background(), 1, 2, 40)

	assert.Empty(t, chunks)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
