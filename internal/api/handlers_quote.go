package api

import (
	"net/http"
	"time"

	"github.com/money-tracker/internal/logging"
	"github.com/money-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// handleRecordQuote handles POST /api/assets/{id}/quotes. The price
// ingestion job appends an observation; the latest quote is also cached so
// readers can skip the table.
func (s *Server) handleRecordQuote(w http.ResponseWriter, r *http.Request) {
	assetID, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid asset ID", nil)
		return
	}

	var req struct {
		Price     string     `json:"price"`
		Volume    string     `json:"volume"`
		Timestamp *time.Time `json:"timestamp"`
	}

	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Field 'price' must be a non-negative decimal string", nil)
		return
	}

	volume := decimal.Zero // schema default
	if req.Volume != "" {
		volume, err = decimal.NewFromString(req.Volume)
		if err != nil || volume.IsNegative() {
			respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Field 'volume' must be a non-negative decimal string", nil)
			return
		}
	}

	info := &models.DailyAssetInfo{
		AssetID: assetID,
		Price:   price,
		Volume:  volume,
	}
	if req.Timestamp != nil {
		info.Timestamp = *req.Timestamp
	}

	if err := s.quotes.Record(r.Context(), info); err != nil {
		respondStorageError(w, err)
		return
	}

	if s.quoteCache != nil {
		if err := s.quoteCache.Put(r.Context(), info); err != nil {
			// The table is the source of truth; a cache failure only costs reads.
			logging.GetGlobalLogger().WithError(err).Warn("failed to cache quote")
		}
	}

	respondJSON(w, http.StatusCreated, info)
}

// handleLatestQuote handles GET /api/assets/{id}/quotes/latest, consulting
// the cache before the table.
func (s *Server) handleLatestQuote(w http.ResponseWriter, r *http.Request) {
	assetID, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid asset ID", nil)
		return
	}

	if s.quoteCache != nil {
		if info, found, err := s.quoteCache.Latest(r.Context(), assetID); err == nil && found {
			respondJSON(w, http.StatusOK, info)
			return
		}
	}

	info, err := s.quotes.LatestForAsset(r.Context(), assetID)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	if s.quoteCache != nil {
		_ = s.quoteCache.Put(r.Context(), info)
	}

	respondJSON(w, http.StatusOK, info)
}

// handleListQuotes handles GET /api/assets/{id}/quotes?from=...&to=...
func (s *Server) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	assetID, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid asset ID", nil)
		return
	}

	from := time.Time{}
	to := time.Now().UTC()

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Query 'from' must be RFC3339", nil)
			return
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Query 'to' must be RFC3339", nil)
			return
		}
		to = parsed
	}

	infos, err := s.quotes.ListByAsset(r.Context(), assetID, from, to)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, infos)
}
