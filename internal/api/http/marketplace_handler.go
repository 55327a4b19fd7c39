package http

import (
	"net/http"

	"bridgeseed-backend/internal/service"

	"github.com/gorilla/mux"
)

type MarketplaceHandler struct {
	marketSvc service.MarketplaceService
	txSvc     service.TransactionService
}

func NewMarketplaceHandler(marketSvc service.MarketplaceService, txSvc service.TransactionService) *MarketplaceHandler {
	return &MarketplaceHandler{marketSvc: marketSvc, txSvc: txSvc}
}

func (h *MarketplaceHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	var req struct {
		Title          string `json:"title"`
		Description    string `json:"description"`
		Category       string `json:"category"`
		PriceMAD       int64  `json:"price_mad"`
		ImageURL       string `json:"image_url"`
		SellerWhatsApp string `json:"seller_whatsapp"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.marketSvc.CreateListing(r.Context(), actor, service.ListingInput{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		PriceMAD:       req.PriceMAD,
		ImageURL:       req.ImageURL,
		SellerWhatsApp: req.SellerWhatsApp,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *MarketplaceHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	items, err := h.marketSvc.ListAvailable(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *MarketplaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.marketSvc.GetItem(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *MarketplaceHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	items, err := h.marketSvc.ListMyListings(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Purchase claims an available item. The response is the pending
// transaction the admin will later verify.
func (h *MarketplaceHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	var req struct {
		ReceiptURL string `json:"receipt_url"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	tx, err := h.txSvc.InitiatePurchase(r.Context(), actor, mux.Vars(r)["id"], req.ReceiptURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}
