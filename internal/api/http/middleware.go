package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"bridgeseed-backend/internal/logger"
	"bridgeseed-backend/internal/security"
	"bridgeseed-backend/internal/service"
)

type contextKey string

const actorContextKey contextKey = "actor"

// ActorFromContext returns the authenticated caller placed on the
// context by the auth middleware.
func ActorFromContext(ctx context.Context) (service.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(service.Actor)
	return actor, ok
}

// AuthMiddleware validates the Bearer token and injects the Actor.
// Routes registered behind it can assume ActorFromContext succeeds.
func AuthMiddleware(tokenManager security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authorization header is required"})
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")
			if token == header {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authorization header must use the Bearer scheme"})
				return
			}

			claims, err := tokenManager.ValidateToken(token)
			if err != nil {
				writeError(w, err)
				return
			}
			if claims.Type != security.TokenTypeAccess {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "an access token is required"})
				return
			}

			actor := service.Actor{ID: claims.UserID, Role: claims.Role}
			ctx := context.WithValue(r.Context(), actorContextKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoggingMiddleware records one line per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
