package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"readbooks-backend/internal/config"
	"readbooks-backend/internal/logger"
	"readbooks-backend/internal/security"
)

type ctxKey string

const identityCtxKey ctxKey = "identity"

// IdentityFromContext returns the verified identity stored by the auth middleware.
func IdentityFromContext(ctx context.Context) (*security.Identity, bool) {
	id, ok := ctx.Value(identityCtxKey).(*security.Identity)
	return id, ok && id != nil
}

// AuthMiddleware verifies the bearer token on routes whose security level requires it.
// Rejections happen before the handler runs, so no store access takes place.
func AuthMiddleware(verifier security.IdentityVerifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := ""
			if current := mux.CurrentRoute(r); current != nil {
				route = current.GetName()
			}
			if config.GetSecurityLevel(route) == config.SecurityPublic {
				next.ServeHTTP(w, r)
				return
			}

			token, err := security.ExtractBearer(r.Header.Get("Authorization"))
			if err != nil {
				writeError(w, r, err, errorMessages{})
				return
			}

			identity, err := verifier.Verify(r.Context(), token)
			if err != nil {
				writeError(w, r, err, errorMessages{})
				return
			}

			ctx := context.WithValue(r.Context(), identityCtxKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs one line per request and turns handler panics into 500s.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if p := recover(); p != nil {
				logger.ErrorContext(r.Context(), "Handler panicked", "method", r.Method, "path", r.URL.Path, "panic", p)
				writeMessage(rec, http.StatusInternalServerError, "Internal server error")
			}
			logger.InfoContext(r.Context(), "HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds())
		}()

		next.ServeHTTP(rec, r)
	})
}
