// Package errors provides categorized errors for the money tracker service.
// Persistence failures are constraint violations surfaced synchronously at
// the point of the write; callers decide how to react.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/money-tracker/internal/types"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	// CategoryValidation represents field validation errors
	CategoryValidation ErrorCategory = "validation"
	// CategoryConflict represents uniqueness violations
	CategoryConflict ErrorCategory = "conflict"
	// CategoryForeignKey represents referential integrity violations
	CategoryForeignKey ErrorCategory = "foreign_key"
	// CategoryNotFound represents missing rows
	CategoryNotFound ErrorCategory = "not_found"
	// CategoryDatabase represents other database errors
	CategoryDatabase ErrorCategory = "database"
	// CategoryCache represents cache errors
	CategoryCache ErrorCategory = "cache"
	// CategoryRateLimit represents rate limit errors
	CategoryRateLimit ErrorCategory = "rate_limit"
	// CategorySystem represents internal errors (5xx)
	CategorySystem ErrorCategory = "system"
)

// CategorizedError represents an error with category and HTTP status code
type CategorizedError struct {
	Category   ErrorCategory
	StatusCode int
	Code       string
	Message    string
	Details    map[string]interface{}
	Cause      error
}

// Error implements the error interface
func (e *CategorizedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *CategorizedError) Unwrap() error {
	return e.Cause
}

// ToServiceError converts to a ServiceError
func (e *CategorizedError) ToServiceError() *types.ServiceError {
	return &types.ServiceError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	}
}

// NewValidationError creates a field validation error
func NewValidationError(field, reason string) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryValidation,
		StatusCode: http.StatusBadRequest,
		Code:       "VALIDATION_FAILED",
		Message:    fmt.Sprintf("invalid field '%s': %s", field, reason),
		Details: map[string]interface{}{
			"field":  field,
			"reason": reason,
		},
	}
}

// NewUniqueViolationError creates a uniqueness violation error, e.g. a
// duplicate (portfolio, asset) holding or duplicate (user, weekday) schedule.
func NewUniqueViolationError(constraint string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryConflict,
		StatusCode: http.StatusConflict,
		Code:       "UNIQUE_VIOLATION",
		Message:    fmt.Sprintf("duplicate value violates constraint %s", constraint),
		Details: map[string]interface{}{
			"constraint": constraint,
		},
		Cause: cause,
	}
}

// NewForeignKeyViolationError creates a referential integrity error for
// writes that reference a deleted or nonexistent parent row.
func NewForeignKeyViolationError(constraint string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryForeignKey,
		StatusCode: http.StatusConflict,
		Code:       "FOREIGN_KEY_VIOLATION",
		Message:    fmt.Sprintf("referenced row does not exist (constraint %s)", constraint),
		Details: map[string]interface{}{
			"constraint": constraint,
		},
		Cause: cause,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string, id interface{}) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryNotFound,
		StatusCode: http.StatusNotFound,
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found: %v", resource, id),
		Details: map[string]interface{}{
			"resource": resource,
			"id":       id,
		},
	}
}

// NewDatabaseError creates a generic database error
func NewDatabaseError(operation string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryDatabase,
		StatusCode: http.StatusInternalServerError,
		Code:       "DATABASE_ERROR",
		Message:    fmt.Sprintf("database operation failed: %s", operation),
		Cause:      cause,
	}
}

// NewCacheError creates a cache error
func NewCacheError(operation string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryCache,
		StatusCode: http.StatusInternalServerError,
		Code:       "CACHE_ERROR",
		Message:    fmt.Sprintf("cache operation failed: %s", operation),
		Cause:      cause,
	}
}

// NewRateLimitError creates a rate limit exceeded error
func NewRateLimitError() *CategorizedError {
	return &CategorizedError{
		Category:   CategoryRateLimit,
		StatusCode: http.StatusTooManyRequests,
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "rate limit exceeded, retry later",
	}
}

// NewInternalError creates an internal system error
func NewInternalError(message string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategorySystem,
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		Cause:      cause,
	}
}

// IsCategory reports whether err is a CategorizedError of the given category.
func IsCategory(err error, category ErrorCategory) bool {
	var ce *CategorizedError
	if errors.As(err, &ce) {
		return ce.Category == category
	}
	return false
}

// IsNotFound reports whether err represents a missing row.
func IsNotFound(err error) bool {
	return IsCategory(err, CategoryNotFound)
}

// IsConflict reports whether err represents a uniqueness violation.
func IsConflict(err error) bool {
	return IsCategory(err, CategoryConflict)
}

// IsForeignKeyViolation reports whether err represents a broken reference.
func IsForeignKeyViolation(err error) bool {
	return IsCategory(err, CategoryForeignKey)
}

// StatusCode extracts the HTTP status for an error, defaulting to 500.
func StatusCode(err error) int {
	var ce *CategorizedError
	if errors.As(err, &ce) {
		return ce.StatusCode
	}
	return http.StatusInternalServerError
}
