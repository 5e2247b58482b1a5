package onboarding

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agrikit/agrikit/pkg/identity"
	"github.com/agrikit/agrikit/pkg/onboarding"
)

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // headers already sent
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, errorResponse{Status: "error", Message: msg})
}

// statusFor maps service sentinels to HTTP status codes. Unmapped
// errors are internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, onboarding.ErrInvalidInput),
		errors.Is(err, identity.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, onboarding.ErrInvitationInvalid):
		return http.StatusNotFound
	case errors.Is(err, onboarding.ErrInvitationExpired):
		return http.StatusGone
	case errors.Is(err, onboarding.ErrInvitationIncomplete):
		return http.StatusConflict
	case errors.Is(err, onboarding.ErrDuplicateActiveUser),
		errors.Is(err, identity.ErrEmailAlreadyInUse):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
