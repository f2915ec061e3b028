package api

import (
	"context"
	"net/url"

	"github.com/ZawadulAmanHredoy/export-import-hub/internal/quantity"
)

// ImportClient records import transactions against the caller's session.
type ImportClient struct {
	client *Client
}

func NewImportClient(client *Client) *ImportClient {
	return &ImportClient{client: client}
}

// Create records an import of qty units from a product. available is the
// last-known stock of the product and bounds the quantity client-side, as a
// UX guard only: the server re-validates authoritatively and is the final
// arbiter, since concurrent importers can race past any client-only check.
// A locally rejected quantity comes back as ErrValidation and no request is
// sent; a stock race discovered at commit time comes back as ErrConflict.
func (i *ImportClient) Create(ctx context.Context, productID string, qty, available int) (*ImportRecord, error) {
	if productID == "" {
		return nil, newValidationError("product id is required")
	}
	if err := quantity.Validate(qty, available); err != nil {
		return nil, newValidationError(err.Error())
	}
	var record ImportRecord
	body := importCreateRequest{ProductID: productID, Quantity: qty}
	if err := i.client.sendJSON(ctx, "POST", "/imports", body, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListMine returns the caller's import records. Requires a session.
func (i *ImportClient) ListMine(ctx context.Context) ([]ImportRecord, error) {
	var records []ImportRecord
	if err := i.client.getJSON(ctx, "/imports/my", nil, &records, true); err != nil {
		return nil, err
	}
	if records == nil {
		records = []ImportRecord{}
	}
	return records, nil
}

// Delete removes one of the caller's import records. Whether the server
// restores the product's stock is server policy; this client only reflects
// the record's removal.
func (i *ImportClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return newValidationError("import id is required")
	}
	return i.client.sendJSON(ctx, "DELETE", "/imports/"+url.PathEscape(id), nil, nil)
}
