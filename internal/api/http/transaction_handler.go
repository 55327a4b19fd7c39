package http

import (
	"net/http"

	"bridgeseed-backend/internal/service"

	"github.com/gorilla/mux"
)

type TransactionHandler struct {
	txSvc service.TransactionService
}

func NewTransactionHandler(txSvc service.TransactionService) *TransactionHandler {
	return &TransactionHandler{txSvc: txSvc}
}

func (h *TransactionHandler) SubmitCashDonation(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	var req struct {
		ProjectID   string `json:"project_id"`
		ProjectName string `json:"project_name"`
		AmountMAD   int64  `json:"amount_mad"`
		ReceiptURL  string `json:"receipt_url"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	tx, err := h.txSvc.SubmitCashDonation(r.Context(), actor, service.CashDonationInput{
		ProjectID:   req.ProjectID,
		ProjectName: req.ProjectName,
		AmountMAD:   req.AmountMAD,
		ReceiptURL:  req.ReceiptURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (h *TransactionHandler) SubmitItemDonation(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	var req struct {
		ProjectID       string `json:"project_id"`
		ProjectName     string `json:"project_name"`
		ItemDescription string `json:"item_description"`
		AssessedMAD     int64  `json:"assessed_mad"`
		ReceiptURL      string `json:"receipt_url"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	tx, err := h.txSvc.SubmitItemDonation(r.Context(), actor, service.ItemDonationInput{
		ProjectID:       req.ProjectID,
		ProjectName:     req.ProjectName,
		ItemDescription: req.ItemDescription,
		AssessedMAD:     req.AssessedMAD,
		ReceiptURL:      req.ReceiptURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (h *TransactionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	txs, err := h.txSvc.ListMyTransactions(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	tx, err := h.txSvc.GetTransaction(r.Context(), actor, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}
