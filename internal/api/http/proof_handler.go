package http

import (
	"io"
	"net/http"
	"path/filepath"

	"bridgeseed-backend/internal/storage"

	"github.com/gorilla/mux"
)

const maxProofUploadBytes = 10 << 20

// ProofHandler accepts receipt and item photo uploads and, when the
// mock storage backend is active, serves them back.
type ProofHandler struct {
	store       storage.Interface
	mockStorage *storage.MockStorageService
}

func NewProofHandler(store storage.Interface, mockStorage *storage.MockStorageService) *ProofHandler {
	return &ProofHandler{store: store, mockStorage: mockStorage}
}

func (h *ProofHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxProofUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "file field is required"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
	default:
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "only image uploads are accepted"})
		return
	}

	url, err := h.store.UploadImage(r.Context(), header.Filename, contentType, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

func (h *ProofHandler) Download(w http.ResponseWriter, r *http.Request) {
	if h.mockStorage == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}

	key := mux.Vars(r)["key"]
	file, err := h.mockStorage.ReadFile(key)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".gif":
		contentType = "image/gif"
	case ".webp":
		contentType = "image/webp"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	io.Copy(w, file)
}
