package cache_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/inventory-client/internal/cache"
	"github.com/aaravmahajanofficial/inventory-client/internal/config"
	"github.com/aaravmahajanofficial/inventory-client/internal/models"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (cache.Cache, redismock.ClientMock, *config.CacheConfig) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.CacheConfig{
		DefaultTTL: 10 * time.Minute,
	}

	return cache.NewRedisCache(client, cfg), mock, cfg
}

func sampleProducts() []models.Product {
	return []models.Product{
		{
			ID:        1,
			Name:      "Mouse",
			Price:     decimal.RequireFromString("19.99"),
			Category:  "Accesorios",
			Stock:     5,
			CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		},
	}
}

func TestRedisCacheGet(t *testing.T) {
	ctx := t.Context()
	key := cache.Key(cache.QueryKeyPrefix, cache.ProductsKey)
	redisKey := cache.Key(cache.Namespace, key)

	payload, err := json.Marshal(sampleProducts())
	require.NoError(t, err)

	t.Run("Success - Key Found", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		mock.ExpectGet(redisKey).SetVal(string(payload))

		// Act
		var result []models.Product
		found, err := redisCache.Get(ctx, key, &result)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		require.Len(t, result, 1)
		assert.Equal(t, "Mouse", result[0].Name)
		assert.True(t, result[0].Price.Equal(decimal.RequireFromString("19.99")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Cache Miss", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		mock.ExpectGet(redisKey).SetErr(redis.Nil)

		// Act
		var result []models.Product
		found, err := redisCache.Get(ctx, key, &result)

		// Assert
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		expectedErr := errors.New("redis connection error")
		mock.ExpectGet(redisKey).SetErr(expectedErr)

		// Act
		var result []models.Product
		found, err := redisCache.Get(ctx, key, &result)

		// Assert
		require.Error(t, err)
		assert.False(t, found)
		assert.ErrorIs(t, err, expectedErr)
		assert.Contains(t, err.Error(), "failed to get key "+key+" from redis")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Corrupt Payload", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		mock.ExpectGet(redisKey).SetVal(`{"not":"a list"}`)

		// Act
		var result []models.Product
		found, err := redisCache.Get(ctx, key, &result)

		// Assert
		require.Error(t, err)
		assert.False(t, found)
		assert.Contains(t, err.Error(), "failed to unmarshal cache data for key "+key)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheSet(t *testing.T) {
	ctx := t.Context()
	key := cache.Key(cache.QueryKeyPrefix, cache.ProductsKey)
	redisKey := cache.Key(cache.Namespace, key)

	payload, err := json.Marshal(sampleProducts())
	require.NoError(t, err)

	t.Run("Success - Explicit TTL", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		mock.ExpectSet(redisKey, payload, 30*time.Second).SetVal("OK")

		// Act
		err := redisCache.Set(ctx, key, sampleProducts(), 30*time.Second)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Default TTL", func(t *testing.T) {
		// Arrange
		redisCache, mock, cfg := setup(t)
		mock.ExpectSet(redisKey, payload, cfg.DefaultTTL).SetVal("OK")

		// Act
		err := redisCache.Set(ctx, key, sampleProducts(), 0)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Marshal Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)

		// Act
		err := redisCache.Set(ctx, key, make(chan int), time.Minute)

		// Assert
		require.Error(t, err)
		var jsonErr *json.UnsupportedTypeError
		assert.ErrorAs(t, err, &jsonErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		expectedErr := errors.New("redis SET failed")
		mock.ExpectSet(redisKey, payload, time.Minute).SetErr(expectedErr)

		// Act
		err := redisCache.Set(ctx, key, sampleProducts(), time.Minute)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheDelete(t *testing.T) {
	ctx := t.Context()
	key := cache.Key(cache.QueryKeyPrefix, cache.ProductsKey)
	redisKey := cache.Key(cache.Namespace, key)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		mock.ExpectDel(redisKey).SetVal(1)

		// Act
		err := redisCache.Delete(ctx, key)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		expectedErr := errors.New("redis DEL failed")
		mock.ExpectDel(redisKey).SetErr(expectedErr)

		// Act
		err := redisCache.Delete(ctx, key)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestKey(t *testing.T) {
	assert.Equal(t, "query:products", cache.Key(cache.QueryKeyPrefix, cache.ProductsKey))
	assert.Equal(t, "prefix:", cache.Key("prefix", ""))
	assert.Equal(t, ":id", cache.Key("", "id"))
}
