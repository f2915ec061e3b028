package api

import (
	"context"
	"net/url"
)

// ProductClient reads the product catalog. All operations are idempotent,
// side-effect-free reads: safe to retry and to run concurrently with anything.
type ProductClient struct {
	client *Client
}

func NewProductClient(client *Client) *ProductClient {
	return &ProductClient{client: client}
}

// List returns the catalog, optionally narrowed by a server-side search term.
// An empty result is a valid success, not an error.
func (p *ProductClient) List(ctx context.Context, search string) ([]Product, error) {
	query := url.Values{}
	query.Set("search", search)
	var products []Product
	if err := p.client.getJSON(ctx, "/products", query, &products, false); err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}

// Get returns a single product. Fails with ErrNotFound when the server
// reports the id does not exist.
func (p *ProductClient) Get(ctx context.Context, id string) (*Product, error) {
	if id == "" {
		return nil, newValidationError("product id is required")
	}
	var product Product
	if err := p.client.getJSON(ctx, "/products/"+url.PathEscape(id), nil, &product, false); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListMine returns the caller's own export listings. Requires a session;
// fails with ErrAuth when unauthenticated.
func (p *ProductClient) ListMine(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := p.client.getJSON(ctx, "/products/my", nil, &products, true); err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}
