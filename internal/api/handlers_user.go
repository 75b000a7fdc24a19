package api

import (
	"net/http"

	"github.com/money-tracker/internal/models"
)

// handleCreateUser handles POST /api/users
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username   string `json:"username"`
		Subscribed *bool  `json:"subscribed"`
	}

	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if req.Username == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Username is required", nil)
		return
	}

	user := &models.User{
		Username:   req.Username,
		Subscribed: true, // schema default
	}
	if req.Subscribed != nil {
		user.Subscribed = *req.Subscribed
	}

	if err := s.users.Create(r.Context(), user); err != nil {
		respondStorageError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// handleGetUser handles GET /api/users/{id}
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid user ID", nil)
		return
	}

	user, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// handleListUsers handles GET /api/users
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	users, err := s.users.List(r.Context(), limit, offset)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// handleUpdateSubscription handles PUT /api/users/{id}/subscription
func (s *Server) handleUpdateSubscription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid user ID", nil)
		return
	}

	var req struct {
		Subscribed *bool `json:"subscribed"`
	}
	if err := parseJSONBody(r, &req); err != nil || req.Subscribed == nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Field 'subscribed' is required", nil)
		return
	}

	if err := s.users.SetSubscribed(r.Context(), id, *req.Subscribed); err != nil {
		respondStorageError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":         id,
		"subscribed": *req.Subscribed,
	})
}

// handleDeleteUser handles DELETE /api/users/{id}. The schema cascades the
// delete to the user's portfolios, holdings, and performance settings.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid user ID", nil)
		return
	}

	if err := s.users.Delete(r.Context(), id); err != nil {
		respondStorageError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
