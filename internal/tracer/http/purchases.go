package http

import (
	"net/http"
	"time"

	"github.com/spendtrace/spendtrace/internal/tracer/domain"
	"github.com/spendtrace/spendtrace/internal/tracer/service"
	"github.com/spendtrace/spendtrace/pkg/httpx"
)

// purchaseDateLayout is the wire format for purchase dates.
const purchaseDateLayout = "2006-01-02"

type PurchasesHandler struct {
	IdentityService *service.IdentityService
	LedgerService   *service.LedgerService
	FeedService     *service.FeedService
}

type createPurchaseRequest struct {
	Purchaser    string  `json:"purchaser"     validate:"required,max=128"`
	Shopname     string  `json:"shopname"      validate:"required,max=128"`
	PurchaseDate string  `json:"purchase_date" validate:"required"`
	Value        float64 `json:"value"         validate:"required,gt=0"`
	Subject      string  `json:"subject"       validate:"required,max=256"`
}

type purchaseResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	ShopID       string  `json:"shop_id"`
	Purchaser    string  `json:"purchaser"`
	PurchaseDate string  `json:"purchase_date"`
	Value        float64 `json:"value"`
	Subject      string  `json:"subject"`
	Language     string  `json:"language,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type purchasePageResponse struct {
	Items   []purchaseResponse `json:"items"`
	Page    int                `json:"page"`
	PerPage int                `json:"per_page"`
	HasNext bool               `json:"has_next"`
	HasPrev bool               `json:"has_prev"`
}

func toPurchaseResponse(p domain.Purchase) purchaseResponse {
	return purchaseResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		ShopID:       p.ShopID,
		Purchaser:    p.Purchaser,
		PurchaseDate: p.PurchaseDate.UTC().Format(purchaseDateLayout),
		Value:        p.Value,
		Subject:      p.Subject,
		Language:     p.Language,
		CreatedAt:    p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toPurchasePageResponse(page domain.PurchasePage) purchasePageResponse {
	items := make([]purchaseResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, toPurchaseResponse(p))
	}
	return purchasePageResponse{
		Items:   items,
		Page:    page.Page,
		PerPage: page.PerPage,
		HasNext: page.HasNext,
		HasPrev: page.HasPrev,
	}
}

func (h *PurchasesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createPurchaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	purchaseDate, err := time.Parse(purchaseDateLayout, req.PurchaseDate)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "purchase_date must look like 2006-01-02")
		return
	}

	purchase, err := h.LedgerService.RecordPurchase(
		r.Context(),
		httpx.UserID(r.Context()),
		req.Purchaser,
		req.Shopname,
		purchaseDate,
		req.Value,
		req.Subject,
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toPurchaseResponse(purchase))
}

func (h *PurchasesHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	page, err := h.FeedService.FeedFor(r.Context(), httpx.UserID(r.Context()), pageParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPurchasePageResponse(page))
}

func (h *PurchasesHandler) HandleExplore(w http.ResponseWriter, r *http.Request) {
	page, err := h.LedgerService.Explore(r.Context(), pageParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPurchasePageResponse(page))
}

func (h *PurchasesHandler) HandleByUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.IdentityService.GetUserByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	page, err := h.LedgerService.PurchasesBy(r.Context(), user.ID, pageParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPurchasePageResponse(page))
}
