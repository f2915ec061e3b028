package view

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/ZawadulAmanHredoy/export-import-hub/internal/api"
	"github.com/ZawadulAmanHredoy/export-import-hub/internal/cache"
)

const (
	latestCount   = 8
	topRatedCount = 4
	topOriginsMax = 8
)

// Stats are the aggregate figures shown on the landing page.
type Stats struct {
	TotalProducts int
	TotalStock    int
	// AvgRating averages only the rated products; unrated (0) are excluded.
	AvgRating   float64
	OriginCount int
}

// OriginCount is one entry of the per-origin product counts.
type OriginCount struct {
	Origin string
	Count  int
}

// HomeData is everything the landing page renders.
type HomeData struct {
	// Latest are the first products in server order, assumed newest first.
	Latest   []api.Product
	TopRated []api.Product
	Origins  []OriginCount
	Stats    Stats
	Status   Status
	Message  string
}

// Home coordinates the landing page: one catalog fetch, several derived
// sections.
type Home struct {
	products *api.ProductClient
	store    *cache.Store
	logger   *slog.Logger
}

func NewHome(products *api.ProductClient, store *cache.Store, logger *slog.Logger) *Home {
	return &Home{
		products: products,
		store:    store,
		logger:   logger.With("view", "home"),
	}
}

func (h *Home) Load(ctx context.Context) (*HomeData, error) {
	key := cache.Key{Kind: cache.KindHomeProducts}
	products, err := cache.Resolve(ctx, h.store, key, func(ctx context.Context) ([]api.Product, error) {
		return h.products.List(ctx, "")
	})
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to load home products", "error", err)
		return &HomeData{
			Status:  StatusError,
			Message: api.UserMessage(err, "Failed to load products"),
		}, err
	}

	return &HomeData{
		Latest:   firstN(products, latestCount),
		TopRated: topRated(products, topRatedCount),
		Origins:  topOrigins(products, topOriginsMax),
		Stats:    computeStats(products),
		Status:   listStatus(len(products)),
	}, nil
}

func firstN(products []api.Product, n int) []api.Product {
	if len(products) < n {
		n = len(products)
	}
	return products[:n]
}

// topRated returns the n best-rated products, unrated excluded.
func topRated(products []api.Product, n int) []api.Product {
	rated := make([]api.Product, 0, len(products))
	for _, p := range products {
		if p.Rating > 0 {
			rated = append(rated, p)
		}
	}
	sort.SliceStable(rated, func(i, j int) bool { return rated[i].Rating > rated[j].Rating })
	return firstN(rated, n)
}

// topOrigins counts products per origin country and returns the n largest.
func topOrigins(products []api.Product, n int) []OriginCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, p := range products {
		origin := strings.TrimSpace(p.OriginCountry)
		if origin == "" {
			continue
		}
		if _, ok := counts[origin]; !ok {
			order = append(order, origin)
		}
		counts[origin]++
	}
	out := make([]OriginCount, 0, len(order))
	for _, origin := range order {
		out = append(out, OriginCount{Origin: origin, Count: counts[origin]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func computeStats(products []api.Product) Stats {
	stats := Stats{TotalProducts: len(products)}
	var ratingSum float64
	var rated int
	origins := make(map[string]struct{})
	for _, p := range products {
		stats.TotalStock += p.AvailableQty
		if p.Rating > 0 {
			ratingSum += p.Rating
			rated++
		}
		if origin := strings.TrimSpace(p.OriginCountry); origin != "" {
			origins[origin] = struct{}{}
		}
	}
	if rated > 0 {
		stats.AvgRating = ratingSum / float64(rated)
	}
	stats.OriginCount = len(origins)
	return stats
}
