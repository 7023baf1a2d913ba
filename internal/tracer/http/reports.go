package http

import (
	"net/http"

	"github.com/spendtrace/spendtrace/internal/tracer/service"
	"github.com/spendtrace/spendtrace/pkg/httpx"
)

type ReportsHandler struct {
	ReportService *service.ReportService
}

type shopSummaryResponse struct {
	Shopname  string  `json:"shopname"`
	Purchases int     `json:"purchases"`
	Total     float64 `json:"total"`
}

type monthSummaryResponse struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

type userSummaryResponse struct {
	Username  string  `json:"username"`
	Purchases int     `json:"purchases"`
	Total     float64 `json:"total"`
}

func (h *ReportsHandler) HandleShops(w http.ResponseWriter, r *http.Request) {
	rows, err := h.ReportService.OverallByShop(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]shopSummaryResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, shopSummaryResponse(row))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string][]shopSummaryResponse{"shops": out})
}

func (h *ReportsHandler) HandleMonthly(w http.ResponseWriter, r *http.Request) {
	rows, err := h.ReportService.Monthly(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]monthSummaryResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, monthSummaryResponse(row))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string][]monthSummaryResponse{"months": out})
}

func (h *ReportsHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.ReportService.ByUser(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]userSummaryResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, userSummaryResponse(row))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string][]userSummaryResponse{"users": out})
}
