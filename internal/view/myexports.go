package view

import (
	"context"
	"log/slog"

	"github.com/ZawadulAmanHredoy/export-import-hub/internal/api"
	"github.com/ZawadulAmanHredoy/export-import-hub/internal/cache"
)

// ExportList is the rendered "my exports" page.
type ExportList struct {
	Items   []api.Product
	Status  Status
	Message string
}

// MyExports coordinates the caller's own listings page: list, create, update,
// delete. Every mutation invalidates the product listings and the owner's
// export list; none of them touches unrelated import listings.
type MyExports struct {
	products *api.ProductClient
	exports  *api.ExportClient
	store    *cache.Store
	logger   *slog.Logger
}

func NewMyExports(products *api.ProductClient, exports *api.ExportClient, store *cache.Store, logger *slog.Logger) *MyExports {
	return &MyExports{
		products: products,
		exports:  exports,
		store:    store,
		logger:   logger.With("view", "my-exports"),
	}
}

func (m *MyExports) Load(ctx context.Context) (*ExportList, error) {
	key := cache.Key{Kind: cache.KindMyExports}
	products, err := cache.Resolve(ctx, m.store, key, func(ctx context.Context) ([]api.Product, error) {
		return m.products.ListMine(ctx)
	})
	if err != nil {
		m.logger.WarnContext(ctx, "Failed to load exports", "error", err)
		return &ExportList{
			Status:  StatusError,
			Message: api.UserMessage(err, "Failed to load exports"),
		}, err
	}
	return &ExportList{Items: products, Status: listStatus(len(products))}, nil
}

// Add publishes a new listing and marks the listings that display it stale.
func (m *MyExports) Add(ctx context.Context, input api.ExportInput) (*api.Product, error) {
	created, err := m.exports.Create(ctx, input)
	if err != nil {
		m.logger.WarnContext(ctx, "Failed to add export", "name", input.Name, "error", err)
		return nil, err
	}
	m.logger.InfoContext(ctx, "Export added", "product_id", created.ID, "name", created.Name)
	m.invalidateListings()
	return created, nil
}

// Update replaces a listing's fields and additionally marks the product's own
// detail entry stale.
func (m *MyExports) Update(ctx context.Context, id string, input api.ExportInput) (*api.Product, error) {
	updated, err := m.exports.Update(ctx, id, input)
	if err != nil {
		m.logger.WarnContext(ctx, "Failed to update export", "product_id", id, "error", err)
		return nil, err
	}
	m.logger.InfoContext(ctx, "Export updated", "product_id", id)
	m.invalidateListings()
	m.store.Invalidate(cache.Key{Kind: cache.KindProduct, Arg: id})
	return updated, nil
}

// Delete removes a listing. A second delete of the same id surfaces the
// server's NotFound, by contract.
func (m *MyExports) Delete(ctx context.Context, id string) error {
	if err := m.exports.Delete(ctx, id); err != nil {
		m.logger.WarnContext(ctx, "Failed to delete export", "product_id", id, "error", err)
		return err
	}
	m.logger.InfoContext(ctx, "Export deleted", "product_id", id)
	m.invalidateListings()
	m.store.Invalidate(cache.Key{Kind: cache.KindProduct, Arg: id})
	return nil
}

func (m *MyExports) invalidateListings() {
	m.store.InvalidateKind(cache.KindProducts)
	m.store.Invalidate(cache.Key{Kind: cache.KindMyExports})
	m.store.Invalidate(cache.Key{Kind: cache.KindLatestProducts})
	m.store.Invalidate(cache.Key{Kind: cache.KindHomeProducts})
}
