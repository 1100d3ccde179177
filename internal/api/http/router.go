package http

import (
	"context"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"readbooks-backend/internal/config"
	"readbooks-backend/internal/logger"
	"readbooks-backend/internal/security"
)

const welcomeText = " Welcome to ReadBooks API"

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps holds everything the router needs.
type RouterDeps struct {
	Catalog        *CatalogHandler
	Lending        *LendingHandler
	Verifier       security.IdentityVerifier
	Health         Pinger
	AllowedOrigins []string
}

// NewRouter registers all routes. Each route is named after its config.Route* constant so the
// auth middleware can look up its security level.
func NewRouter(deps RouterDeps) http.Handler {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)
	r.Use(AuthMiddleware(deps.Verifier))

	r.HandleFunc("/", welcome).Methods(http.MethodGet).Name(config.RouteWelcome)
	r.HandleFunc("/healthz", healthz(deps.Health)).Methods(http.MethodGet).Name(config.RouteHealth)

	r.HandleFunc("/categories", deps.Catalog.ListCategories).Methods(http.MethodGet).Name(config.RouteListCategories)
	r.HandleFunc("/books", deps.Catalog.ListBooks).Methods(http.MethodGet).Name(config.RouteListBooks)
	r.HandleFunc("/books", deps.Catalog.CreateBook).Methods(http.MethodPost).Name(config.RouteCreateBook)
	r.HandleFunc("/books/{id}", deps.Catalog.GetBook).Methods(http.MethodGet).Name(config.RouteGetBook)
	r.HandleFunc("/books/{id}", deps.Catalog.UpdateBook).Methods(http.MethodPut).Name(config.RouteUpdateBook)

	r.HandleFunc("/borrow/{id}", deps.Lending.Borrow).Methods(http.MethodPost).Name(config.RouteBorrowBook)
	r.HandleFunc("/borrowed", deps.Lending.ListBorrowed).Methods(http.MethodGet).Name(config.RouteListBorrowed)
	r.HandleFunc("/return/{borrowId}", deps.Lending.Return).Methods(http.MethodDelete).Name(config.RouteReturnBook)

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)
	return cors(r)
}

func welcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(welcomeText))
}

func healthz(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p != nil {
			if err := p.Ping(r.Context()); err != nil {
				logger.ErrorContext(r.Context(), "Health check failed", "error", err)
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
