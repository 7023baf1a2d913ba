package http

import (
	"net/http"
	"time"

	"github.com/spendtrace/spendtrace/internal/tracer/domain"
	"github.com/spendtrace/spendtrace/internal/tracer/service"
	"github.com/spendtrace/spendtrace/pkg/httpx"
	"github.com/spendtrace/spendtrace/pkg/jwtx"
)

type RegisterHandler struct {
	IdentityService *service.IdentityService
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email"    validate:"required,email,max=128"`
	Password string `json:"password" validate:"required,min=8"`
}

type userResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Remindings string `json:"remindings,omitempty"`
	LastSeen   string `json:"last_seen,omitempty"`
}

func toUserResponse(u domain.User) userResponse {
	resp := userResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Remindings: u.Remindings,
	}
	if !u.LastSeen.IsZero() {
		resp.LastSeen = u.LastSeen.UTC().Format(time.RFC3339)
	}
	return resp
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.IdentityService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

type LoginHandler struct {
	IdentityService *service.IdentityService
	Tokens          *jwtx.Codec
	SessionTTL      time.Duration
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        userResponse `json:"user"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.IdentityService.Verify(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := h.Tokens.Sign(user.ID, jwtx.PurposeSession, h.SessionTTL)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.SessionTTL.Seconds()),
		User:        toUserResponse(user),
	})
}
