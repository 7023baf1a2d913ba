package sqlite

import (
	"context"

	"github.com/spendtrace/spendtrace/internal/tracer/domain"
)

type shopsRepo struct {
	db dbtx
}

func (r *shopsRepo) GetShopByID(ctx context.Context, id string) (domain.Shop, error) {
	var s domain.Shop
	err := r.db.QueryRowContext(ctx,
		`SELECT id, shopname, created_at FROM shops WHERE id = ?`, id,
	).Scan(&s.ID, &s.Shopname, &s.CreatedAt)
	if err != nil {
		return domain.Shop{}, mapNotFound(err)
	}
	return s, nil
}

func (r *shopsRepo) GetShopByName(ctx context.Context, shopname string) (domain.Shop, error) {
	var s domain.Shop
	err := r.db.QueryRowContext(ctx,
		`SELECT id, shopname, created_at FROM shops WHERE shopname = ?`, shopname,
	).Scan(&s.ID, &s.Shopname, &s.CreatedAt)
	if err != nil {
		return domain.Shop{}, mapNotFound(err)
	}
	return s, nil
}

// CreateShop is a no-op when the shopname already exists. The losing side of
// a racing creation re-reads instead of failing.
func (r *shopsRepo) CreateShop(ctx context.Context, s domain.Shop) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shops (id, shopname, created_at) VALUES (?, ?, ?)
		ON CONFLICT (shopname) DO NOTHING`,
		s.ID, s.Shopname, s.CreatedAt.UTC(),
	)
	return err
}
