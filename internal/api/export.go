package api

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ExportClient mutates the caller's own export listings. It does not touch
// the local cache: invalidation after a successful mutation is the view
// coordinator's responsibility, which keeps this client stateless and
// testable as pure request/response.
type ExportClient struct {
	client   *Client
	validate *validator.Validate
}

func NewExportClient(client *Client) *ExportClient {
	return &ExportClient{
		client:   client,
		validate: validator.New(),
	}
}

// checkInput runs the client-side precondition check. Failures come back as
// ErrValidation with per-field reasons, and no request is sent.
func (e *ExportClient) checkInput(input ExportInput) error {
	err := e.validate.Struct(input)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		reasons := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			reasons = append(reasons, fieldErr.Field()+" failed on rule: "+fieldErr.Tag())
		}
		return newValidationError(strings.Join(reasons, "; "))
	}
	return newValidationError(err.Error())
}

// Create publishes a new export listing and returns the created resource.
func (e *ExportClient) Create(ctx context.Context, input ExportInput) (*Product, error) {
	if err := e.checkInput(input); err != nil {
		return nil, err
	}
	var created Product
	if err := e.client.sendJSON(ctx, "POST", "/products", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces an existing listing's fields. Ownership is enforced by the
// server, not locally checkable: a non-owner caller gets ErrAuth back.
func (e *ExportClient) Update(ctx context.Context, id string, input ExportInput) (*Product, error) {
	if id == "" {
		return nil, newValidationError("product id is required")
	}
	if err := e.checkInput(input); err != nil {
		return nil, err
	}
	var updated Product
	if err := e.client.sendJSON(ctx, "PUT", "/products/"+url.PathEscape(id), input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a listing. Deleting is deliberately NOT idempotent from the
// caller's perspective: a second delete of the same id yields ErrNotFound.
func (e *ExportClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return newValidationError("product id is required")
	}
	return e.client.sendJSON(ctx, "DELETE", "/products/"+url.PathEscape(id), nil, nil)
}
