package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	listingdomain "github.com/stashspot/backend/internal/listing/domain"
	userdomain "github.com/stashspot/backend/internal/user/domain"
)

type errorResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps domain errors onto HTTP status codes: absent entities to
// 404, authorization failures to 403, bad credentials to 401, malformed
// input and constraint violations to 400, everything else to 500.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, listingdomain.ErrListingNotFound),
		errors.Is(err, listingdomain.ErrHostNotFound),
		errors.Is(err, userdomain.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, listingdomain.ErrForbidden),
		errors.Is(err, userdomain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, userdomain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, listingdomain.ErrInvalidListingData),
		errors.Is(err, userdomain.ErrInvalidUserData),
		errors.Is(err, userdomain.ErrDuplicateUser):
		status = http.StatusBadRequest
	}
	respondJSON(w, status, errorResponse{Message: err.Error()})
}
