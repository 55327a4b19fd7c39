package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/security"
	"bridgeseed-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret-0123456789-0123456789"

func TestAuthMiddleware(t *testing.T) {
	tm := security.NewTokenManager(testSecret, 60, 1440)

	var gotActor service.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor, _ = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(tm)(next)

	t.Run("ValidAccessToken", func(t *testing.T) {
		token, err := tm.GenerateAccessToken("user-1", "sara@um6p.ma", domain.UserRoleAdmin)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", gotActor.ID)
		assert.Equal(t, domain.UserRoleAdmin, gotActor.Role)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("RefreshTokenRejected", func(t *testing.T) {
		token, err := tm.GenerateRefreshToken("user-1", "sara@um6p.ma")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &domain.ValidationError{Field: "amount", Reason: "must be greater than zero"}, http.StatusBadRequest},
		{"permission", &domain.PermissionError{Action: "verify transactions"}, http.StatusForbidden},
		{"invalid state", &domain.InvalidStateError{Entity: "transaction", ID: "tx-1", Want: "PENDING"}, http.StatusConflict},
		{"conflict", &domain.ConflictError{Entity: "item", ID: "item-1"}, http.StatusConflict},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"expired token", security.ErrExpiredToken, http.StatusUnauthorized},
		{"dependency", &domain.DependencyError{Dependency: "proof storage", Err: errors.New("timeout")}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}
