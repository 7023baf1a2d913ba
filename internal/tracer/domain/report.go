package domain

// Aggregates consumed by the reporting/chart UI. Read-only projections over
// the purchase ledger.

type ShopSummary struct {
	Shopname  string
	Purchases int
	Total     float64
}

type MonthSummary struct {
	Month string // "2006-01"
	Total float64
}

type UserSummary struct {
	Username  string
	Purchases int
	Total     float64
}
