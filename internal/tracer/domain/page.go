package domain

// PurchasePage is one page of an ordered purchase listing. Pages are 1-based;
// an out-of-range page is an empty page, not an error.
type PurchasePage struct {
	Items   []Purchase
	Page    int
	PerPage int
	HasNext bool
	HasPrev bool
}
