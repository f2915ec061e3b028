package api

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog is the routed backend the product client talks to in tests.
func fakeCatalog(t *testing.T) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/products", func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Query().Get("search") {
		case "":
			respond(t, w, http.StatusOK, `[
				{"_id":"p1","name":"Ceylon Tea","originCountry":"Sri Lanka","rating":4.5,"price":12.5,"availableQty":30},
				{"_id":"p2","name":"Basmati Rice","originCountry":"India","price":8,"availableQty":100}
			]`)
		case "tea":
			respond(t, w, http.StatusOK, `[
				{"_id":"p1","name":"Ceylon Tea","originCountry":"Sri Lanka","rating":4.5,"price":12.5,"availableQty":30}
			]`)
		default:
			respond(t, w, http.StatusOK, `[]`)
		}
	})
	r.Get("/products/my", func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") == "" {
			respond(t, w, http.StatusUnauthorized, `{"message":"login required"}`)
			return
		}
		respond(t, w, http.StatusOK, `[{"_id":"p9","name":"My Jute Bags","price":3,"availableQty":500}]`)
	})
	r.Get("/products/{id}", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "id") != "p1" {
			respond(t, w, http.StatusNotFound, `{"message":"product not found"}`)
			return
		}
		respond(t, w, http.StatusOK, `{"_id":"p1","name":"Ceylon Tea","price":12.5,"availableQty":30}`)
	})
	return r
}

func respond(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func Test_ProductClient_List(t *testing.T) {
	testCases := []struct {
		name          string
		search        string
		expectedIDs   []string
		expectedEmpty bool
	}{
		{name: "Success - full catalog", search: "", expectedIDs: []string{"p1", "p2"}},
		{name: "Success - server-side search", search: "tea", expectedIDs: []string{"p1"}},
		{name: "Success - empty result is not an error", search: "nothing", expectedEmpty: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			products := NewProductClient(newTestClient(t, fakeCatalog(t), ""))
			// when
			list, err := products.List(t.Context(), tc.search)
			// then
			require.NoError(t, err)
			if tc.expectedEmpty {
				assert.Empty(t, list)
				assert.NotNil(t, list)
				return
			}
			ids := make([]string, 0, len(list))
			for _, p := range list {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}

func Test_ProductClient_Get(t *testing.T) {
	// given
	products := NewProductClient(newTestClient(t, fakeCatalog(t), ""))

	// when
	product, err := products.Get(t.Context(), "p1")
	// then
	require.NoError(t, err)
	assert.Equal(t, "p1", product.ID)
	assert.Equal(t, "Ceylon Tea", product.Name)
	assert.Equal(t, 30, product.AvailableQty)

	// when: unknown id
	_, err = products.Get(t.Context(), "missing")
	// then
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "product not found", UserMessage(err, "fallback"))
}

func Test_ProductClient_ListMine(t *testing.T) {
	t.Run("Success - authenticated", func(t *testing.T) {
		// given
		products := NewProductClient(newTestClient(t, fakeCatalog(t), "token"))
		// when
		list, err := products.ListMine(t.Context())
		// then
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "My Jute Bags", list[0].Name)
	})

	t.Run("Error - missing session detected locally", func(t *testing.T) {
		// given
		var requests int
		counting := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		})
		products := NewProductClient(newTestClient(t, counting, ""))
		// when
		_, err := products.ListMine(t.Context())
		// then: rejected before any request goes out
		assert.ErrorIs(t, err, ErrAuth)
		assert.Zero(t, requests)
	})
}
