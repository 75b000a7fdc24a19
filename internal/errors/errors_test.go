package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizedError_Error(t *testing.T) {
	err := NewUniqueViolationError("portfolios_assets_portfolio_id_asset_id_key", nil)
	assert.Contains(t, err.Error(), "UNIQUE_VIOLATION")
	assert.Contains(t, err.Error(), "portfolios_assets_portfolio_id_asset_id_key")

	cause := fmt.Errorf("pg: duplicate key")
	withCause := NewForeignKeyViolationError("portfolios_user_id_fkey", cause)
	assert.Contains(t, withCause.Error(), "caused by")
	assert.ErrorIs(t, withCause, cause)
}

func TestCategoryPredicates(t *testing.T) {
	unique := NewUniqueViolationError("performances_user_id_days_to_send_email_key", nil)
	fk := NewForeignKeyViolationError("daily_asset_info_asset_id_fkey", nil)
	missing := NewNotFoundError("asset", 42)

	assert.True(t, IsConflict(unique))
	assert.False(t, IsConflict(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.True(t, IsNotFound(missing))

	// Wrapped errors still match.
	wrapped := fmt.Errorf("create holding: %w", unique)
	assert.True(t, IsConflict(wrapped))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusConflict, StatusCode(NewUniqueViolationError("x", nil)))
	assert.Equal(t, http.StatusNotFound, StatusCode(NewNotFoundError("user", 1)))
	assert.Equal(t, http.StatusBadRequest, StatusCode(NewValidationError("symbol", "too long")))
	assert.Equal(t, http.StatusTooManyRequests, StatusCode(NewRateLimitError()))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(fmt.Errorf("plain")))
}
