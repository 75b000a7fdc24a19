package api

import (
	"net/http"
	"time"

	"github.com/money-tracker/internal/models"
	"github.com/money-tracker/internal/types"
)

// handleCreatePerformance handles POST /api/performances. Omitted enum
// fields take the schema defaults (Monday, Weekly). Registering the same
// weekday twice for a user fails with a conflict.
func (s *Server) handleCreatePerformance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID          int64  `json:"userId"`
		DaysToSendEmail string `json:"daysToSendEmail"`
		Periodicity     string `json:"periodicity"`
	}

	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if req.UserID <= 0 {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Field 'userId' is required", nil)
		return
	}

	perf := &models.Performance{UserID: req.UserID}

	if req.DaysToSendEmail != "" {
		day, err := types.ParseWeekday(req.DaysToSendEmail)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error(), nil)
			return
		}
		perf.DaysToSendEmail = day
	}

	if req.Periodicity != "" {
		periodicity, err := types.ParsePeriodicity(req.Periodicity)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error(), nil)
			return
		}
		perf.Periodicity = periodicity
	}

	if err := s.performances.Create(r.Context(), perf); err != nil {
		respondStorageError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, perf)
}

// handleListUserPerformances handles GET /api/users/{id}/performances
func (s *Server) handleListUserPerformances(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid user ID", nil)
		return
	}

	perfs, err := s.performances.ListByUser(r.Context(), userID)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, perfs)
}

// handleMarkPerformanceSent handles PUT /api/performances/{id}/sent. The
// report mailer calls this after delivering a report.
func (s *Server) handleMarkPerformanceSent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid performance ID", nil)
		return
	}

	var req struct {
		SentAt *time.Time `json:"sentAt"`
	}
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	sentAt := time.Now().UTC()
	if req.SentAt != nil {
		sentAt = *req.SentAt
	}

	if err := s.performances.UpdateLastSent(r.Context(), id, sentAt); err != nil {
		respondStorageError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":     id,
		"sentAt": sentAt,
	})
}

// handleDeletePerformance handles DELETE /api/performances/{id}
func (s *Server) handleDeletePerformance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid performance ID", nil)
		return
	}

	if err := s.performances.Delete(r.Context(), id); err != nil {
		respondStorageError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
