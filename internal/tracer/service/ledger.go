package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/spendtrace/spendtrace/internal/tracer/domain"
	"github.com/spendtrace/spendtrace/internal/tracer/store"
	"github.com/spendtrace/spendtrace/pkg/idx"
	"github.com/spendtrace/spendtrace/pkg/langdetect"
	"github.com/spendtrace/spendtrace/pkg/slogx"
)

// LedgerService appends purchase facts and serves ordered listings over them.
// DetectLanguage is an external collaborator injected as a function value;
// when nil, no language is recorded.
type LedgerService struct {
	Store          store.Store
	PerPage        int
	DetectLanguage func(string) string
}

// RecordPurchase validates and persists one purchase. Shop resolution and the
// insert run in a single transaction so a constraint violation can never
// leave a half-written record behind.
func (s *LedgerService) RecordPurchase(
	ctx context.Context,
	authorID, purchaser, shopname string,
	purchaseDate time.Time,
	value float64,
	subject string,
) (domain.Purchase, error) {
	purchaser = strings.TrimSpace(purchaser)
	shopname = strings.TrimSpace(shopname)
	subject = strings.TrimSpace(subject)

	switch {
	case value <= 0:
		return domain.Purchase{}, invalidField("value", "must be greater than zero")
	case purchaser == "":
		return domain.Purchase{}, invalidField("purchaser", "must not be empty")
	case shopname == "":
		return domain.Purchase{}, invalidField("shopname", "must not be empty")
	case subject == "":
		return domain.Purchase{}, invalidField("subject", "must not be empty")
	case purchaseDate.IsZero():
		return domain.Purchase{}, invalidField("purchase_date", "must not be empty")
	}

	language := ""
	if s.DetectLanguage != nil {
		language = sanitizeLanguage(s.DetectLanguage(subject))
	}

	purchase := domain.Purchase{
		ID:           idx.New().String(),
		UserID:       authorID,
		Purchaser:    purchaser,
		PurchaseDate: purchaseDate.UTC(),
		Value:        value,
		Subject:      subject,
		Language:     language,
		CreatedAt:    time.Now().UTC(),
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		shop, err := getOrCreateShop(ctx, tx, shopname)
		if err != nil {
			return err
		}
		purchase.ShopID = shop.ID
		return tx.Purchases().CreatePurchase(ctx, purchase)
	})
	if err != nil {
		return domain.Purchase{}, err
	}

	slogx.FromContext(ctx).Info("purchase recorded",
		slog.String("purchase_id", purchase.ID),
		slog.String("author_id", authorID),
		slog.Float64("value", value),
	)
	return purchase, nil
}

// PurchasesBy lists purchases authored by userID, most recent first.
func (s *LedgerService) PurchasesBy(ctx context.Context, userID string, page int) (domain.PurchasePage, error) {
	return paginate(page, s.PerPage, func(limit, offset int) ([]domain.Purchase, error) {
		return s.Store.Purchases().ListByAuthor(ctx, userID, limit, offset)
	})
}

// Explore lists all purchases, most recent first.
func (s *LedgerService) Explore(ctx context.Context, page int) (domain.PurchasePage, error) {
	return paginate(page, s.PerPage, func(limit, offset int) ([]domain.Purchase, error) {
		return s.Store.Purchases().ListAll(ctx, limit, offset)
	})
}

// sanitizeLanguage drops undetectable or overlong language codes.
func sanitizeLanguage(code string) string {
	if code == langdetect.Unknown || len(code) > domain.LanguageMaxLen {
		return ""
	}
	return code
}

// paginate fetches one row past the page boundary to decide HasNext without a
// second count query. Pages are 1-based; out-of-range pages come back empty.
func paginate(page, perPage int, fetch func(limit, offset int) ([]domain.Purchase, error)) (domain.PurchasePage, error) {
	if page < 1 {
		page = 1
	}

	items, err := fetch(perPage+1, (page-1)*perPage)
	if err != nil {
		return domain.PurchasePage{}, err
	}

	hasNext := len(items) > perPage
	if hasNext {
		items = items[:perPage]
	}

	return domain.PurchasePage{
		Items:   items,
		Page:    page,
		PerPage: perPage,
		HasNext: hasNext,
		HasPrev: page > 1,
	}, nil
}
