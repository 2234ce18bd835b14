package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/inventory-client/internal/config"
	"github.com/aaravmahajanofficial/inventory-client/internal/health"
	"github.com/aaravmahajanofficial/inventory-client/internal/storage/mocks"
	healthgo "github.com/hellofresh/health-go/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Remote:  config.Remote{ProbeTimeout: time.Second},
		Offline: config.Offline{Driver: "file", Key: "inventory_offline_products"},
		Cache:   config.CacheConfig{Backend: "memory"},
	}
}

func TestNewHealthHandler(t *testing.T) {
	t.Run("Success - All Checks Pass", func(t *testing.T) {
		// Arrange
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("[]"))
		}))
		defer upstream.Close()

		entries := mocks.NewEntryStore(t)
		entries.On("Get", mock.Anything, "inventory_offline_products").Return(nil, false, nil)

		h, err := health.NewHealthHandler(testConfig(), &health.Endpoints{
			UpstreamURL: upstream.URL,
			HTTPClient:  upstream.Client(),
			Entries:     entries,
		}, "test")
		require.NoError(t, err)

		// Act
		check := h.Measure(context.Background())

		// Assert
		assert.Equal(t, healthgo.StatusOK, check.Status)
		assert.Empty(t, check.Failures)
		assert.Equal(t, health.ComponentName, check.Component.Name)
	})

	t.Run("Upstream Down Is Partially Available", func(t *testing.T) {
		// Arrange
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer upstream.Close()

		entries := mocks.NewEntryStore(t)
		entries.On("Get", mock.Anything, "inventory_offline_products").Return(nil, false, nil)

		h, err := health.NewHealthHandler(testConfig(), &health.Endpoints{
			UpstreamURL: upstream.URL,
			HTTPClient:  upstream.Client(),
			Entries:     entries,
		}, "test")
		require.NoError(t, err)

		// Act
		check := h.Measure(context.Background())

		// Assert
		assert.Equal(t, healthgo.StatusPartiallyAvailable, check.Status)
		assert.Contains(t, check.Failures["upstream"], "502")
	})

	t.Run("Failure - Offline Store Unreadable", func(t *testing.T) {
		// Arrange
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer upstream.Close()

		entries := mocks.NewEntryStore(t)
		entries.On("Get", mock.Anything, "inventory_offline_products").Return(nil, false, errors.New("disk gone"))

		h, err := health.NewHealthHandler(testConfig(), &health.Endpoints{
			UpstreamURL: upstream.URL,
			HTTPClient:  upstream.Client(),
			Entries:     entries,
		}, "test")
		require.NoError(t, err)

		// Act
		check := h.Measure(context.Background())

		// Assert
		assert.Equal(t, healthgo.StatusUnavailable, check.Status)
		assert.Contains(t, check.Failures["offline-store"], "disk gone")
	})
}
