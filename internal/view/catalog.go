package view

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/ZawadulAmanHredoy/export-import-hub/internal/api"
	"github.com/ZawadulAmanHredoy/export-import-hub/internal/cache"
)

// Sort selects the client-side sort order for the catalog.
type Sort string

const (
	// SortServerOrder keeps the backend order, no client resort. Default.
	SortServerOrder Sort = "newest"
	SortPriceAsc    Sort = "price-asc"
	SortPriceDesc   Sort = "price-desc"
	SortRatingDesc  Sort = "rating-desc"
	SortQtyDesc     Sort = "qty-desc"
)

// Filter narrows and orders the catalog. Search is sent to the server and
// additionally refined client-side; the rest is purely client-side.
type Filter struct {
	Search    string
	Origin    string
	MinRating float64
	Sort      Sort
}

// CatalogPage is one rendered page of the catalog.
type CatalogPage struct {
	Items      []api.Product
	Page       int
	TotalPages int
	// TotalItems counts the whole filtered result, not just this page.
	TotalItems int
	// Origins are the distinct origin countries present in the fetched data,
	// for populating the origin filter.
	Origins []string
	Status  Status
	Message string
}

// Catalog coordinates the product list page: server search through the cache,
// client-side filter/sort, and fixed-size pagination. Changing any filter or
// sort resets the current page to 1.
type Catalog struct {
	products *api.ProductClient
	store    *cache.Store
	pageSize int
	logger   *slog.Logger

	mu     sync.Mutex
	filter Filter
	page   int
}

func NewCatalog(products *api.ProductClient, store *cache.Store, pageSize int, logger *slog.Logger) *Catalog {
	return &Catalog{
		products: products,
		store:    store,
		pageSize: pageSize,
		logger:   logger.With("view", "catalog"),
		filter:   Filter{Sort: SortServerOrder},
		page:     1,
	}
}

// SetFilter replaces the filter and resets pagination to the first page.
func (c *Catalog) SetFilter(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f.Sort == "" {
		f.Sort = SortServerOrder
	}
	if f != c.filter {
		c.page = 1
	}
	c.filter = f
}

// SetPage requests a page; out-of-range values clamp at render time.
func (c *Catalog) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if page < 1 {
		page = 1
	}
	c.page = page
}

// Load fetches the catalog for the current search term (through the cache)
// and derives the current page.
func (c *Catalog) Load(ctx context.Context) (*CatalogPage, error) {
	c.mu.Lock()
	filter := c.filter
	page := c.page
	c.mu.Unlock()

	key := cache.Key{Kind: cache.KindProducts, Arg: filter.Search}
	products, err := cache.Resolve(ctx, c.store, key, func(ctx context.Context) ([]api.Product, error) {
		return c.products.List(ctx, filter.Search)
	})
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to load products", "search", filter.Search, "error", err)
		return &CatalogPage{
			Status:  StatusError,
			Message: api.UserMessage(err, "Failed to load products"),
			Page:    1, TotalPages: 1,
		}, err
	}

	filtered := sortProducts(filterProducts(products, filter), filter.Sort)
	items, currentPage, totalPages := paginate(filtered, page, c.pageSize)

	return &CatalogPage{
		Items:      items,
		Page:       currentPage,
		TotalPages: totalPages,
		TotalItems: len(filtered),
		Origins:    originOptions(products),
		Status:     listStatus(len(filtered)),
	}, nil
}

// filterProducts applies the client-side refinements: case-insensitive
// substring match on name, exact origin match, minimum rating.
func filterProducts(products []api.Product, f Filter) []api.Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]api.Product, 0, len(products))
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if f.Origin != "" && strings.TrimSpace(p.OriginCountry) != f.Origin {
			continue
		}
		if p.Rating < f.MinRating {
			continue
		}
		out = append(out, p)
	}
	return out
}

// sortProducts orders a copy of the list. Sorts are stable: items that
// compare equal retain their relative input order. SortServerOrder returns
// the input untouched.
func sortProducts(products []api.Product, order Sort) []api.Product {
	if order == SortServerOrder || order == "" {
		return products
	}
	out := make([]api.Product, len(products))
	copy(out, products)
	switch order {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortRatingDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case SortQtyDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].AvailableQty > out[j].AvailableQty })
	}
	return out
}

// paginate slices one fixed-size page out of the list. Pages are 1-based; a
// request beyond the last page clamps to the last page. An empty list yields
// one empty page.
func paginate(products []api.Product, page, size int) (items []api.Product, currentPage, totalPages int) {
	totalPages = (len(products) + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	currentPage = page
	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}
	start := (currentPage - 1) * size
	end := start + size
	if start > len(products) {
		start = len(products)
	}
	if end > len(products) {
		end = len(products)
	}
	return products[start:end], currentPage, totalPages
}

// originOptions lists the distinct origin countries in the data, sorted.
func originOptions(products []api.Product) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range products {
		origin := strings.TrimSpace(p.OriginCountry)
		if origin == "" {
			continue
		}
		if _, ok := seen[origin]; ok {
			continue
		}
		seen[origin] = struct{}{}
		out = append(out, origin)
	}
	sort.Strings(out)
	return out
}
