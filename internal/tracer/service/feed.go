package service

import (
	"context"

	"github.com/spendtrace/spendtrace/internal/tracer/domain"
	"github.com/spendtrace/spendtrace/internal/tracer/store"
)

// FeedService composes the purchase feed a user sees: purchases by everyone
// they follow plus their own.
type FeedService struct {
	Store   store.Store
	PerPage int
}

// FeedFor returns one page of the feed for userID, most recent first with
// equal timestamps kept in insertion order. The union and the ordering happen
// in a single query so pagination stays consistent under concurrent writes.
func (s *FeedService) FeedFor(ctx context.Context, userID string, page int) (domain.PurchasePage, error) {
	return paginate(page, s.PerPage, func(limit, offset int) ([]domain.Purchase, error) {
		return s.Store.Purchases().ListFeed(ctx, userID, limit, offset)
	})
}
