package http

import (
	"errors"
	"net/http"

	"github.com/spendtrace/spendtrace/internal/tracer/service"
	"github.com/spendtrace/spendtrace/pkg/httpx"
	"github.com/spendtrace/spendtrace/pkg/slogx"
)

type ResetHandler struct {
	IdentityService *service.IdentityService
	Mailer          service.Mailer
}

type resetRequestRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleRequest issues a reset token and hands it to the mailer. The response
// is identical whether or not the email is registered, so the endpoint cannot
// be used to probe for accounts.
func (h *ResetHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	var req resetRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, user, err := h.IdentityService.IssueResetToken(r.Context(), req.Email)
	switch {
	case err == nil:
		if err := h.Mailer.SendPasswordReset(r.Context(), user.Email, token); err != nil {
			slogx.FromContext(r.Context()).Error("reset mail delivery failed", "err", err)
		}
	case errors.Is(err, service.ErrUnknownUser):
		// fall through to the generic answer
	default:
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusAccepted, map[string]string{
		"message": "Check your email for instructions to reset your password.",
	})
}

type resetPasswordRequest struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *ResetHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.IdentityService.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Your password has been reset.",
	})
}
