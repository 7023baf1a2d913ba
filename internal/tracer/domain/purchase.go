package domain

import "time"

// LanguageMaxLen bounds detected language codes; longer codes are dropped.
const LanguageMaxLen = 5

// Purchase is an immutable fact record. UserID is the authenticated author;
// Purchaser is a free-text display name that may differ from the author.
type Purchase struct {
	ID           string
	UserID       string
	ShopID       string
	Purchaser    string
	PurchaseDate time.Time
	Value        float64 // always > 0
	Subject      string
	Language     string // ISO 639-1 code or ""
	CreatedAt    time.Time
}
