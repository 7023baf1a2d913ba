package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spendtrace/spendtrace/internal/tracer/domain"
	"github.com/spendtrace/spendtrace/internal/tracer/store"
	"github.com/spendtrace/spendtrace/pkg/idx"
)

// CatalogService owns the shop catalog. Shops come into existence lazily the
// first time a purchase references an unseen name.
type CatalogService struct {
	Store store.Store
}

// GetOrCreateShop resolves a shop name to exactly one Shop row, creating it
// when absent. Safe under concurrent calls with the same name: the insert is
// a no-op on conflict and the row is re-read afterwards, inside one
// transaction, so a losing creator returns the winner's row.
func (s *CatalogService) GetOrCreateShop(ctx context.Context, name string) (domain.Shop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Shop{}, invalidField("shopname", "must not be empty")
	}

	var shop domain.Shop
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		shop, err = getOrCreateShop(ctx, tx, name)
		return err
	})
	return shop, err
}

// getOrCreateShop is the tx-scoped variant shared with the ledger and the
// bulk importer, which need shop resolution inside a larger transaction.
func getOrCreateShop(ctx context.Context, tx store.Tx, name string) (domain.Shop, error) {
	shop, err := tx.Shops().GetShopByName(ctx, name)
	if err == nil {
		return shop, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Shop{}, err
	}

	candidate := domain.Shop{
		ID:        idx.New().String(),
		Shopname:  name,
		CreatedAt: time.Now().UTC(),
	}
	if err := tx.Shops().CreateShop(ctx, candidate); err != nil {
		return domain.Shop{}, err
	}

	// Re-read rather than returning candidate: on a lost race the insert did
	// nothing and the winner's row is the real one.
	return tx.Shops().GetShopByName(ctx, name)
}
