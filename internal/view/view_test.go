package view

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ZawadulAmanHredoy/export-import-hub/internal/api"
	"github.com/ZawadulAmanHredoy/export-import-hub/internal/auth"
	"github.com/ZawadulAmanHredoy/export-import-hub/internal/cache"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEnv wires a signed-in set of clients and an empty cache against a fake
// backend.
type testEnv struct {
	store    *cache.Store
	products *api.ProductClient
	exports  *api.ExportClient
	imports  *api.ImportClient
}

func newTestEnv(t *testing.T, handler http.Handler) *testEnv {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	session := auth.NewSession(auth.NewStaticTokenSource("test-token"))
	client, err := api.NewClient(api.Config{BaseURL: server.URL}, session, testLogger())
	require.NoError(t, err)

	return &testEnv{
		store:    cache.NewStore(),
		products: api.NewProductClient(client),
		exports:  api.NewExportClient(client),
		imports:  api.NewImportClient(client),
	}
}

// warm seeds the given keys as fresh so a later invalidation is observable.
func (e *testEnv) warm(keys ...cache.Key) {
	for _, key := range keys {
		e.store.Set(key, []api.Product{})
	}
}

// keyState reads the freshness of a key that must exist in the cache.
func keyState(t *testing.T, store *cache.Store, key cache.Key) cache.State {
	t.Helper()
	entry, ok := store.Get(key)
	require.True(t, ok, "expected cache entry for %s", key)
	return entry.State
}
