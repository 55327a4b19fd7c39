package http

import (
	"net/http"

	"bridgeseed-backend/internal/security"

	"github.com/gorilla/mux"
)

// Handlers collects the route handlers the router wires up.
type Handlers struct {
	Auth        *AuthHandler
	Transaction *TransactionHandler
	Admin       *AdminHandler
	Marketplace *MarketplaceHandler
	User        *UserHandler
	Contact     *ContactHandler
	Proof       *ProofHandler
}

// NewRouter wires all routes under /api/v1. Public routes need no
// token; everything else sits behind the auth middleware. Admin-only
// enforcement happens in the service layer against the actor role.
func NewRouter(h Handlers, tokenManager security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Public
	api.HandleFunc("/auth/exchange", h.Auth.ExchangeIDToken).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/contact", h.Contact.Submit).Methods(http.MethodPost)
	api.HandleFunc("/marketplace/items", h.Marketplace.ListAvailable).Methods(http.MethodGet)
	api.HandleFunc("/marketplace/items/{id}", h.Marketplace.Get).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", h.User.Leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/proofs/{key}", h.Proof.Download).Methods(http.MethodGet)

	// Authenticated
	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tokenManager))
	authed.HandleFunc("/uploads", h.Proof.Upload).Methods(http.MethodPost)
	authed.HandleFunc("/transactions/cash-donations", h.Transaction.SubmitCashDonation).Methods(http.MethodPost)
	authed.HandleFunc("/transactions/item-donations", h.Transaction.SubmitItemDonation).Methods(http.MethodPost)
	authed.HandleFunc("/transactions", h.Transaction.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/transactions/{id}", h.Transaction.Get).Methods(http.MethodGet)
	authed.HandleFunc("/marketplace/items", h.Marketplace.CreateListing).Methods(http.MethodPost)
	authed.HandleFunc("/marketplace/items/{id}/purchase", h.Marketplace.Purchase).Methods(http.MethodPost)
	authed.HandleFunc("/marketplace/my-listings", h.Marketplace.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/users/me", h.User.GetMe).Methods(http.MethodGet)
	authed.HandleFunc("/users/me/visibility", h.User.SetVisibility).Methods(http.MethodPut)
	authed.HandleFunc("/users/me/points", h.User.PointsHistory).Methods(http.MethodGet)

	// Admin review queues; role is checked by the services.
	authed.HandleFunc("/admin/transactions/pending", h.Admin.ListPendingTransactions).Methods(http.MethodGet)
	authed.HandleFunc("/admin/transactions/{id}/verify", h.Admin.VerifyTransaction).Methods(http.MethodPost)
	authed.HandleFunc("/admin/badge-requests", h.Admin.ListBadgeRequests).Methods(http.MethodGet)
	authed.HandleFunc("/admin/badge-requests/{id}/approve", h.Admin.ApproveBadgeRequest).Methods(http.MethodPost)
	authed.HandleFunc("/admin/badge-requests/{id}/reject", h.Admin.RejectBadgeRequest).Methods(http.MethodPost)
	authed.HandleFunc("/admin/contact", h.Admin.ListContactSubmissions).Methods(http.MethodGet)
	authed.HandleFunc("/admin/contact/{id}/read", h.Admin.MarkContactRead).Methods(http.MethodPost)

	return r
}
