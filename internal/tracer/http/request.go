package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/spendtrace/spendtrace/internal/tracer/service"
	"github.com/spendtrace/spendtrace/pkg/httpx"
)

// validate checks request body structs against their `validate` tags.
var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeJSON decodes and validates a request body into dst. On failure it
// writes the error response itself and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
				"invalid field: "+verrs[0].Field())
			return false
		}
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "validation failed")
		return false
	}
	return true
}

// pageParam reads the 1-based ?page= query parameter, defaulting to 1.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// writeServiceError maps the service error taxonomy onto HTTP responses.
// Every entry is recoverable: the client gets a machine-readable code plus a
// human-readable correction hint.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateUsername):
		httpx.WriteError(w, http.StatusConflict, "duplicate_username", "Please use a different username.")
	case errors.Is(err, service.ErrDuplicateEmail):
		httpx.WriteError(w, http.StatusConflict, "duplicate_email", "Please use a different email address.")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid username or password.")
	case errors.Is(err, service.ErrSelfFollow):
		httpx.WriteError(w, http.StatusBadRequest, "self_follow", "You cannot follow yourself.")
	case errors.Is(err, service.ErrUnknownUser):
		httpx.WriteError(w, http.StatusNotFound, "unknown_user", "User not found.")
	case errors.Is(err, service.ErrTokenExpired):
		httpx.WriteError(w, http.StatusUnauthorized, "token_expired", "The token has expired; request a new one.")
	case errors.Is(err, service.ErrTokenInvalid):
		httpx.WriteError(w, http.StatusUnauthorized, "token_invalid", "The token is not valid.")
	case service.IsValidation(err):
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", err.Error())
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "Something went wrong.")
	}
}
