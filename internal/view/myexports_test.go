package view

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZawadulAmanHredoy/export-import-hub/internal/api"
	"github.com/ZawadulAmanHredoy/export-import-hub/internal/cache"
)

type exportBackend struct {
	router    http.Handler
	mine      string
	mutations int
}

func newExportBackend(t *testing.T) *exportBackend {
	t.Helper()
	b := &exportBackend{mine: `[{"_id":"p1","name":"Ceylon Tea","price":12.5,"availableQty":30}]`}

	echo := func(w http.ResponseWriter, req *http.Request, status int, id string) {
		b.mutations++
		var input api.ExportInput
		require.NoError(t, json.NewDecoder(req.Body).Decode(&input))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		err := json.NewEncoder(w).Encode(map[string]any{
			"_id": id, "name": input.Name, "price": input.Price, "availableQty": input.AvailableQty,
		})
		require.NoError(t, err)
	}

	r := chi.NewRouter()
	r.Get("/products/my", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(b.mine))
		require.NoError(t, err)
	})
	r.Post("/products", func(w http.ResponseWriter, req *http.Request) {
		echo(w, req, http.StatusCreated, "p-new")
	})
	r.Put("/products/{id}", func(w http.ResponseWriter, req *http.Request) {
		echo(w, req, http.StatusOK, chi.URLParam(req, "id"))
	})
	r.Delete("/products/{id}", func(w http.ResponseWriter, req *http.Request) {
		b.mutations++
		w.WriteHeader(http.StatusNoContent)
	})

	b.router = r
	return b
}

func validExport() api.ExportInput {
	return api.ExportInput{Name: "Ceylon Tea", Price: 12.5, OriginCountry: "Sri Lanka", AvailableQty: 30}
}

func Test_MyExports_Load(t *testing.T) {
	testCases := []struct {
		name           string
		mine           string
		expectedStatus Status
		expectedItems  int
	}{
		{
			name:           "Success - listings present",
			mine:           `[{"_id":"p1","name":"Ceylon Tea"},{"_id":"p2","name":"Basmati Rice"}]`,
			expectedStatus: StatusReady,
			expectedItems:  2,
		},
		{
			name:           "Success - no listings is an explicit empty state",
			mine:           `[]`,
			expectedStatus: StatusEmpty,
			expectedItems:  0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			backend := newExportBackend(t)
			backend.mine = tc.mine
			env := newTestEnv(t, backend.router)
			exports := NewMyExports(env.products, env.exports, env.store, testLogger())

			// when
			list, err := exports.Load(t.Context())

			// then
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, list.Status)
			assert.Len(t, list.Items, tc.expectedItems)
		})
	}
}

func Test_MyExports_Add_MarksListingsStale(t *testing.T) {
	// given: every listing the new product could appear on is warm
	backend := newExportBackend(t)
	env := newTestEnv(t, backend.router)
	exports := NewMyExports(env.products, env.exports, env.store, testLogger())
	env.warm(
		cache.Key{Kind: cache.KindProducts},
		cache.Key{Kind: cache.KindProducts, Arg: "tea"},
		cache.Key{Kind: cache.KindMyExports},
		cache.Key{Kind: cache.KindLatestProducts},
		cache.Key{Kind: cache.KindHomeProducts},
		cache.Key{Kind: cache.KindMyImports},
	)

	// when
	created, err := exports.Add(t.Context(), validExport())

	// then
	require.NoError(t, err)
	assert.Equal(t, "p-new", created.ID)

	assert.Equal(t, cache.StateStale, keyState(t, env.store, cache.Key{Kind: cache.KindProducts}))
	assert.Equal(t, cache.StateStale, keyState(t, env.store, cache.Key{Kind: cache.KindProducts, Arg: "tea"}))
	assert.Equal(t, cache.StateStale, keyState(t, env.store, cache.Key{Kind: cache.KindMyExports}))
	assert.Equal(t, cache.StateStale, keyState(t, env.store, cache.Key{Kind: cache.KindLatestProducts}))
	assert.Equal(t, cache.StateStale, keyState(t, env.store, cache.Key{Kind: cache.KindHomeProducts}))
	// an export changes nothing about the caller's imports
	assert.Equal(t, cache.StateFresh, keyState(t, env.store, cache.Key{Kind: cache.KindMyImports}))
}

func Test_MyExports_Add_InvalidInputSendsNothing(t *testing.T) {
	// given
	backend := newExportBackend(t)
	env := newTestEnv(t, backend.router)
	exports := NewMyExports(env.products, env.exports, env.store, testLogger())
	env.warm(cache.Key{Kind: cache.KindMyExports})

	input := validExport()
	input.Name = ""

	// when
	created, err := exports.Add(t.Context(), input)

	// then
	require.ErrorIs(t, err, api.ErrValidation)
	assert.Nil(t, created)
	assert.Equal(t, 0, backend.mutations)
	assert.Equal(t, cache.StateFresh, keyState(t, env.store, cache.Key{Kind: cache.KindMyExports}))
}

func Test_MyExports_Update_AlsoMarksDetailStale(t *testing.T) {
	// given
	backend := newExportBackend(t)
	env := newTestEnv(t, backend.router)
	exports := NewMyExports(env.products, env.exports, env.store, testLogger())
	env.warm(
		cache.Key{Kind: cache.KindProduct, Arg: "p1"},
		cache.Key{Kind: cache.KindProduct, Arg: "p2"},
		cache.Key{Kind: cache.KindMyExports},
	)

	// when
	updated, err := exports.Update(t.Context(), "p1", validExport())

	// then
	require.NoError(t, err)
	assert.Equal(t, "p1", updated.ID)
	assert.Equal(t, cache.StateStale, keyState(t, env.store, cache.Key{Kind: cache.KindProduct, Arg: "p1"}))
	assert.Equal(t, cache.StateStale, keyState(t, env.store, cache.Key{Kind: cache.KindMyExports}))
	// other products' detail entries are untouched
	assert.Equal(t, cache.StateFresh, keyState(t, env.store, cache.Key{Kind: cache.KindProduct, Arg: "p2"}))
}

func Test_MyExports_Delete_MarksListingsAndDetailStale(t *testing.T) {
	// given
	backend := newExportBackend(t)
	env := newTestEnv(t, backend.router)
	exports := NewMyExports(env.products, env.exports, env.store, testLogger())
	env.warm(
		cache.Key{Kind: cache.KindProduct, Arg: "p1"},
		cache.Key{Kind: cache.KindMyExports},
		cache.Key{Kind: cache.KindMyImports},
	)

	// when
	err := exports.Delete(t.Context(), "p1")

	// then
	require.NoError(t, err)
	assert.Equal(t, cache.StateStale, keyState(t, env.store, cache.Key{Kind: cache.KindProduct, Arg: "p1"}))
	assert.Equal(t, cache.StateStale, keyState(t, env.store, cache.Key{Kind: cache.KindMyExports}))
	assert.Equal(t, cache.StateFresh, keyState(t, env.store, cache.Key{Kind: cache.KindMyImports}))
}
