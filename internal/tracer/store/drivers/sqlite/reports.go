package sqlite

import (
	"context"

	"github.com/spendtrace/spendtrace/internal/tracer/domain"
)

// reportsRepo serves the read-only aggregates the chart UI renders. It never
// writes.
type reportsRepo struct {
	db dbtx
}

func (r *reportsRepo) SummaryByShop(ctx context.Context) ([]domain.ShopSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.shopname, COUNT(p.id), COALESCE(SUM(p.value), 0)
		FROM shops s
		LEFT JOIN purchases p ON p.shop_id = s.id
		GROUP BY s.id
		ORDER BY SUM(p.value) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ShopSummary
	for rows.Next() {
		var s domain.ShopSummary
		if err := rows.Scan(&s.Shopname, &s.Purchases, &s.Total); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *reportsRepo) SummaryByMonth(ctx context.Context) ([]domain.MonthSummary, error) {
	// purchase_date is stored as Go's time.Time text form ("2026-01-15
	// 10:00:00 +0000 UTC"), which sqlite's date functions cannot parse. The
	// stored text is UTC-normalized and starts "YYYY-MM-", so the month
	// bucket is the first seven characters.
	rows, err := r.db.QueryContext(ctx, `
		SELECT substr(purchase_date, 1, 7) AS month, SUM(value)
		FROM purchases
		GROUP BY month
		ORDER BY month ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MonthSummary
	for rows.Next() {
		var m domain.MonthSummary
		if err := rows.Scan(&m.Month, &m.Total); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *reportsRepo) SummaryByUser(ctx context.Context) ([]domain.UserSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.username, COUNT(p.id), COALESCE(SUM(p.value), 0)
		FROM users u
		LEFT JOIN purchases p ON p.user_id = u.id
		GROUP BY u.id
		ORDER BY u.username ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.UserSummary
	for rows.Next() {
		var s domain.UserSummary
		if err := rows.Scan(&s.Username, &s.Purchases, &s.Total); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
