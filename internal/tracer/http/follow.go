package http

import (
	"net/http"

	"github.com/spendtrace/spendtrace/internal/tracer/service"
	"github.com/spendtrace/spendtrace/pkg/httpx"
)

type FollowHandler struct {
	IdentityService *service.IdentityService
	FollowService   *service.FollowService
}

func (h *FollowHandler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	target, err := h.IdentityService.GetUserByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.FollowService.Follow(r.Context(), httpx.UserID(r.Context()), target.ID); err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "You are now following " + target.Username + ".",
	})
}

func (h *FollowHandler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	target, err := h.IdentityService.GetUserByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.FollowService.Unfollow(r.Context(), httpx.UserID(r.Context()), target.ID); err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "You are no longer following " + target.Username + ".",
	})
}
