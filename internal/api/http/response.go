package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/logger"
	"bridgeseed-backend/internal/security"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps domain errors onto HTTP statuses. Anything not
// recognized is a 500 with a generic message so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr   *domain.ValidationError
		invalidStateErr *domain.InvalidStateError
		permissionErr   *domain.PermissionError
		conflictErr     *domain.ConflictError
		dependencyErr   *domain.DependencyError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: validationErr.Error()})
	case errors.As(err, &permissionErr):
		writeJSON(w, http.StatusForbidden, errorBody{Error: permissionErr.Error()})
	case errors.As(err, &invalidStateErr):
		writeJSON(w, http.StatusConflict, errorBody{Error: invalidStateErr.Error()})
	case errors.As(err, &conflictErr):
		writeJSON(w, http.StatusConflict, errorBody{Error: conflictErr.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrWrongTokenType):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
	case errors.As(err, &dependencyErr):
		logger.Error("Dependency failure", "dependency", dependencyErr.Dependency, "error", err)
		writeJSON(w, http.StatusBadGateway, errorBody{Error: dependencyErr.Dependency + " is unavailable"})
	default:
		logger.Error("Unhandled error in request", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return false
	}
	return true
}
