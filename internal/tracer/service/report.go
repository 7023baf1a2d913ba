package service

import (
	"context"

	"github.com/spendtrace/spendtrace/internal/tracer/domain"
	"github.com/spendtrace/spendtrace/internal/tracer/store"
)

// ReportService serves the aggregates behind the tabular/graphical report
// views. Strictly read-only.
type ReportService struct {
	Store store.Store
}

// OverallByShop totals value and purchase count per shop.
func (s *ReportService) OverallByShop(ctx context.Context) ([]domain.ShopSummary, error) {
	return s.Store.Reports().SummaryByShop(ctx)
}

// Monthly totals purchase value per calendar month of the purchase date.
func (s *ReportService) Monthly(ctx context.Context) ([]domain.MonthSummary, error) {
	return s.Store.Reports().SummaryByMonth(ctx)
}

// ByUser totals value and purchase count per author.
func (s *ReportService) ByUser(ctx context.Context) ([]domain.UserSummary, error) {
	return s.Store.Reports().SummaryByUser(ctx)
}
