package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "ferrastock/internal/errors"
)

func TestMapToHTTPStatus_Taxonomy(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		status   int
		category string
	}{
		{"validation", apperror.NewValidationError("quantidade inválida"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", apperror.NewNotFoundError("item"), http.StatusNotFound, "NOT_FOUND"},
		{"insufficient stock", apperror.NewInsufficientStockError(2, 3), http.StatusBadRequest, "INSUFFICIENT_STOCK"},
		{"persistence", apperror.NewPersistenceError("commit", errors.New("conn reset")), http.StatusInternalServerError, "PERSISTENCE_ERROR"},
		{"conflict", apperror.NewConflictError("código"), http.StatusConflict, "CONFLICT"},
		{"unauthorized", apperror.NewUnauthorizedError("token"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"untyped", errors.New("boom"), http.StatusInternalServerError, "UNKNOWN_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, category, _ := apperror.MapToHTTPStatus(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.category, category)
		})
	}
}

func TestMapToHTTPStatus_WrappedError(t *testing.T) {
	err := fmt.Errorf("lançamento: %w", apperror.NewNotFoundError("item x"))

	status, category, message := apperror.MapToHTTPStatus(err)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", category)
	assert.Contains(t, message, "item x")
}

func TestDetails_InsufficientStock(t *testing.T) {
	details := apperror.Details(apperror.NewInsufficientStockError(2, 3))

	assert.Equal(t, 2, details["current_quantity"])
	assert.Equal(t, 3, details["requested_amount"])
}

func TestDetails_PersistenceIsRetryable(t *testing.T) {
	cause := errors.New("lock timeout")
	err := apperror.NewPersistenceError("falha no commit", cause)

	assert.Equal(t, true, apperror.Details(err)["retryable"])
	assert.ErrorIs(t, err, cause)
}

func TestDetails_NoneForValidation(t *testing.T) {
	assert.Nil(t, apperror.Details(apperror.NewValidationError("x")))
}
