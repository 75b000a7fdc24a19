package api

import (
	"net/http"

	"github.com/money-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// handleCreatePortfolio handles POST /api/portfolios
func (s *Server) handleCreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID int64 `json:"userId"`
	}

	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if req.UserID <= 0 {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Field 'userId' is required", nil)
		return
	}

	portfolio := &models.Portfolio{UserID: req.UserID}
	if err := s.portfolios.Create(r.Context(), portfolio); err != nil {
		respondStorageError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, portfolio)
}

// handleGetPortfolio handles GET /api/portfolios/{id}
func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid portfolio ID", nil)
		return
	}

	portfolio, err := s.portfolios.GetByID(r.Context(), id)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, portfolio)
}

// handleListUserPortfolios handles GET /api/users/{id}/portfolios
func (s *Server) handleListUserPortfolios(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid user ID", nil)
		return
	}

	portfolios, err := s.portfolios.ListByUser(r.Context(), userID)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, portfolios)
}

// handleDeletePortfolio handles DELETE /api/portfolios/{id}. Holdings go
// with the portfolio via cascade.
func (s *Server) handleDeletePortfolio(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid portfolio ID", nil)
		return
	}

	if err := s.portfolios.Delete(r.Context(), id); err != nil {
		respondStorageError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleCreateHolding handles POST /api/portfolios/{id}/holdings. Adding an
// asset the portfolio already holds fails with a conflict; the client
// updates the existing holding instead.
func (s *Server) handleCreateHolding(w http.ResponseWriter, r *http.Request) {
	portfolioID, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid portfolio ID", nil)
		return
	}

	var req struct {
		AssetID  int64  `json:"assetId"`
		Quantity string `json:"quantity"`
	}

	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if req.AssetID <= 0 {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Field 'assetId' is required", nil)
		return
	}

	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil || quantity.IsNegative() {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Field 'quantity' must be a non-negative decimal string", nil)
		return
	}

	holding := &models.Holding{
		PortfolioID: portfolioID,
		AssetID:     req.AssetID,
		Quantity:    quantity,
	}
	if err := s.holdings.Create(r.Context(), holding); err != nil {
		respondStorageError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, holding)
}

// handleListHoldings handles GET /api/portfolios/{id}/holdings
func (s *Server) handleListHoldings(w http.ResponseWriter, r *http.Request) {
	portfolioID, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid portfolio ID", nil)
		return
	}

	holdings, err := s.holdings.ListByPortfolio(r.Context(), portfolioID)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, holdings)
}

// handleUpdateHolding handles PUT /api/holdings/{id}. Note the acquisition
// date is restamped on update.
func (s *Server) handleUpdateHolding(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid holding ID", nil)
		return
	}

	var req struct {
		Quantity string `json:"quantity"`
	}
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil || quantity.IsNegative() {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Field 'quantity' must be a non-negative decimal string", nil)
		return
	}

	if err := s.holdings.UpdateQuantity(r.Context(), id, quantity); err != nil {
		respondStorageError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":       id,
		"quantity": quantity,
	})
}

// handleDeleteHolding handles DELETE /api/holdings/{id}
func (s *Server) handleDeleteHolding(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid holding ID", nil)
		return
	}

	if err := s.holdings.Delete(r.Context(), id); err != nil {
		respondStorageError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
