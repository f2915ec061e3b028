package view

import (
	"context"
	"log/slog"

	"github.com/ZawadulAmanHredoy/export-import-hub/internal/api"
	"github.com/ZawadulAmanHredoy/export-import-hub/internal/cache"
)

// Detail coordinates the product detail page and the import workflow on it.
type Detail struct {
	products *api.ProductClient
	imports  *api.ImportClient
	store    *cache.Store
	logger   *slog.Logger
}

func NewDetail(products *api.ProductClient, imports *api.ImportClient, store *cache.Store, logger *slog.Logger) *Detail {
	return &Detail{
		products: products,
		imports:  imports,
		store:    store,
		logger:   logger.With("view", "detail"),
	}
}

// Load fetches one product through the cache.
func (d *Detail) Load(ctx context.Context, id string) (*api.Product, error) {
	key := cache.Key{Kind: cache.KindProduct, Arg: id}
	return cache.Resolve(ctx, d.store, key, func(ctx context.Context) (*api.Product, error) {
		return d.products.Get(ctx, id)
	})
}

// ImportNow records an import of qty units from the product. The quantity is
// bounded client-side by the product's last-known stock before any request
// goes out; the server remains the final arbiter and may still reject with a
// conflict if concurrent importers won the race. On success the product, the
// product listings and the caller's import list are marked stale.
func (d *Detail) ImportNow(ctx context.Context, id string, qty int) (*api.ImportRecord, error) {
	product, err := d.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	record, err := d.imports.Create(ctx, id, qty, product.AvailableQty)
	if err != nil {
		d.logger.WarnContext(ctx, "Import rejected", "product_id", id, "quantity", qty, "error", err)
		return nil, err
	}
	d.logger.InfoContext(ctx, "Import recorded", "product_id", id, "quantity", qty, "import_id", record.ID)

	d.store.Invalidate(cache.Key{Kind: cache.KindProduct, Arg: id})
	d.store.Invalidate(cache.Key{Kind: cache.KindLatestProducts})
	d.store.InvalidateKind(cache.KindProducts)
	d.store.Invalidate(cache.Key{Kind: cache.KindMyImports})
	return record, nil
}
