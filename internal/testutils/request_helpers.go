package testutils

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/inventory-client/internal/api/middleware"
	"github.com/aaravmahajanofficial/inventory-client/internal/connectivity"
	"github.com/aaravmahajanofficial/inventory-client/internal/models"
	"github.com/aaravmahajanofficial/inventory-client/internal/notify"
	"github.com/aaravmahajanofficial/inventory-client/internal/offline"
	"github.com/aaravmahajanofficial/inventory-client/internal/repository"
	"github.com/aaravmahajanofficial/inventory-client/internal/storage/filestore"
	"github.com/stretchr/testify/require"
)

// CreateTestRequest builds a request carrying a silent request logger and
// the given path values.
func CreateTestRequest(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return req.WithContext(middleware.WithLogger(req.Context(), logger))
}

// OfflineRepository is a repository pinned to offline mode over a temporary
// file store.
type OfflineRepository struct {
	*repository.Repository
	Store    *offline.Store
	Notifier *notify.Recorder
}

func NewOfflineRepository(t *testing.T) *OfflineRepository {
	t.Helper()

	entries, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	store := offline.New(entries, offline.DefaultKey)
	store.Load(t.Context())

	recorder := &notify.Recorder{}

	return &OfflineRepository{
		Repository: repository.New(repository.Deps{
			State:    connectivity.NewResolvedState(models.ModeOffline),
			Offline:  store,
			Notifier: recorder,
		}),
		Store:    store,
		Notifier: recorder,
	}
}
