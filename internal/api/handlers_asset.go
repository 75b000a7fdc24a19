package api

import (
	"net/http"

	"github.com/money-tracker/internal/models"
)

// handleCreateAsset handles POST /api/assets
func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
		Type   string `json:"type"`
	}

	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	asset := &models.Asset{
		Name:   req.Name,
		Symbol: req.Symbol,
		Type:   req.Type,
	}
	if err := asset.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	if err := s.assets.Create(r.Context(), asset); err != nil {
		respondStorageError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, asset)
}

// handleGetAsset handles GET /api/assets/{id}
func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid asset ID", nil)
		return
	}

	asset, err := s.assets.GetByID(r.Context(), id)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, asset)
}

// handleListAssets handles GET /api/assets, optionally filtered by symbol.
// Symbols are not unique, so a symbol query may return several assets.
func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	if symbol := r.URL.Query().Get("symbol"); symbol != "" {
		assets, err := s.assets.GetBySymbol(r.Context(), symbol)
		if err != nil {
			respondStorageError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, assets)
		return
	}

	limit, offset := parsePagination(r)
	assets, err := s.assets.List(r.Context(), limit, offset)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, assets)
}

// handleDeleteAsset handles DELETE /api/assets/{id}. The schema cascades the
// delete to every holding and daily info row referencing the asset; the
// cached quote is dropped alongside.
func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid asset ID", nil)
		return
	}

	if err := s.assets.Delete(r.Context(), id); err != nil {
		respondStorageError(w, err)
		return
	}

	if s.quoteCache != nil {
		// Cache entries expire on their own; invalidation just tightens the window.
		_ = s.quoteCache.Invalidate(r.Context(), id)
	}

	w.WriteHeader(http.StatusNoContent)
}
