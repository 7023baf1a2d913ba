package sqlite

import (
	"context"
	"database/sql"

	"github.com/spendtrace/spendtrace/internal/tracer/domain"
)

type purchasesRepo struct {
	db dbtx
}

const purchaseColumns = `id, user_id, shop_id, purchaser, purchase_date, value, subject, language, created_at`

func (r *purchasesRepo) CreatePurchase(ctx context.Context, p domain.Purchase) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO purchases (`+purchaseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.ShopID, p.Purchaser,
		p.PurchaseDate.UTC(), p.Value, p.Subject, p.Language, p.CreatedAt.UTC(),
	)
	return err
}

func (r *purchasesRepo) ListByAuthor(ctx context.Context, userID string, limit, offset int) ([]domain.Purchase, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+purchaseColumns+` FROM purchases
		WHERE user_id = ?
		ORDER BY created_at DESC, id ASC
		LIMIT ? OFFSET ?`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return collectPurchases(rows)
}

func (r *purchasesRepo) ListAll(ctx context.Context, limit, offset int) ([]domain.Purchase, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+purchaseColumns+` FROM purchases
		ORDER BY created_at DESC, id ASC
		LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return collectPurchases(rows)
}

// ListFeed unions purchases of followed authors with the user's own in one
// query. UNION deduplicates; ordering is newest first with equal timestamps
// kept in insertion order (ids are ULIDs, so id order is insert order).
func (r *purchasesRepo) ListFeed(ctx context.Context, userID string, limit, offset int) ([]domain.Purchase, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.`+feedColumns+`
		FROM purchases p
		JOIN followers f ON f.followed_id = p.user_id
		WHERE f.follower_id = ?1
		UNION
		SELECT p.`+feedColumns+`
		FROM purchases p
		WHERE p.user_id = ?1
		ORDER BY created_at DESC, id ASC
		LIMIT ?2 OFFSET ?3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return collectPurchases(rows)
}

// feedColumns qualifies every column with the p alias for the union query.
const feedColumns = `id, p.user_id, p.shop_id, p.purchaser, p.purchase_date, p.value, p.subject, p.language, p.created_at`

func collectPurchases(rows *sql.Rows) ([]domain.Purchase, error) {
	defer rows.Close()

	var out []domain.Purchase
	for rows.Next() {
		var p domain.Purchase
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.ShopID, &p.Purchaser,
			&p.PurchaseDate, &p.Value, &p.Subject, &p.Language, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
