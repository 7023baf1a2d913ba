package http

import (
	"net/http"

	"github.com/spendtrace/spendtrace/internal/tracer/service"
	"github.com/spendtrace/spendtrace/pkg/httpx"
)

type ProfileHandler struct {
	IdentityService *service.IdentityService
}

func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.IdentityService.GetUserByID(r.Context(), httpx.UserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

type updateProfileRequest struct {
	Username   string `json:"username"   validate:"required,max=64"`
	Remindings string `json:"remindings" validate:"max=140"`
}

func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.IdentityService.UpdateProfile(r.Context(), httpx.UserID(r.Context()), req.Username, req.Remindings)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}
