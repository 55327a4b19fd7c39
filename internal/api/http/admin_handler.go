package http

import (
	"net/http"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/service"

	"github.com/gorilla/mux"
)

// AdminHandler groups the review-queue endpoints: transaction
// verification, badge requests and the contact inbox.
type AdminHandler struct {
	verificationSvc service.VerificationService
	badgeSvc        service.BadgeService
	contactSvc      service.ContactService
}

func NewAdminHandler(verificationSvc service.VerificationService, badgeSvc service.BadgeService, contactSvc service.ContactService) *AdminHandler {
	return &AdminHandler{
		verificationSvc: verificationSvc,
		badgeSvc:        badgeSvc,
		contactSvc:      contactSvc,
	}
}

func (h *AdminHandler) ListPendingTransactions(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	txs, err := h.verificationSvc.ListPendingTransactions(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (h *AdminHandler) VerifyTransaction(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	var req struct {
		Decision string `json:"decision"`
		Reason   string `json:"reason"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	tx, err := h.verificationSvc.VerifyTransaction(r.Context(), actor,
		mux.Vars(r)["id"], domain.VerificationDecision(req.Decision), req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *AdminHandler) ListBadgeRequests(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	reqs, err := h.badgeSvc.ListPendingRequests(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

func (h *AdminHandler) ApproveBadgeRequest(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	if err := h.badgeSvc.ApproveRequest(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "approved"})
}

func (h *AdminHandler) RejectBadgeRequest(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	if err := h.badgeSvc.RejectRequest(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

func (h *AdminHandler) ListContactSubmissions(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	subs, err := h.contactSvc.List(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func (h *AdminHandler) MarkContactRead(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	if err := h.contactSvc.MarkRead(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
