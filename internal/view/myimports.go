package view

import (
	"context"
	"log/slog"

	"github.com/ZawadulAmanHredoy/export-import-hub/internal/api"
	"github.com/ZawadulAmanHredoy/export-import-hub/internal/cache"
)

// ImportList is the rendered "my imports" page.
type ImportList struct {
	Items   []api.ImportRecord
	Status  Status
	Message string
}

// MyImports coordinates the caller's import history page.
type MyImports struct {
	imports *api.ImportClient
	store   *cache.Store
	logger  *slog.Logger
}

func NewMyImports(imports *api.ImportClient, store *cache.Store, logger *slog.Logger) *MyImports {
	return &MyImports{
		imports: imports,
		store:   store,
		logger:  logger.With("view", "my-imports"),
	}
}

func (m *MyImports) Load(ctx context.Context) (*ImportList, error) {
	key := cache.Key{Kind: cache.KindMyImports}
	records, err := cache.Resolve(ctx, m.store, key, func(ctx context.Context) ([]api.ImportRecord, error) {
		return m.imports.ListMine(ctx)
	})
	if err != nil {
		m.logger.WarnContext(ctx, "Failed to load imports", "error", err)
		return &ImportList{
			Status:  StatusError,
			Message: api.UserMessage(err, "Failed to load imports"),
		}, err
	}
	return &ImportList{Items: records, Status: listStatus(len(records))}, nil
}

// Remove deletes one of the caller's import records. Only the caller's own
// import list could have changed, so only that key goes stale; whether the
// server restores product stock is its policy and not reflected here.
func (m *MyImports) Remove(ctx context.Context, id string) error {
	if err := m.imports.Delete(ctx, id); err != nil {
		m.logger.WarnContext(ctx, "Failed to remove import", "import_id", id, "error", err)
		return err
	}
	m.logger.InfoContext(ctx, "Import removed", "import_id", id)
	m.store.Invalidate(cache.Key{Kind: cache.KindMyImports})
	return nil
}
