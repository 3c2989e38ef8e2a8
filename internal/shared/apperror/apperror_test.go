package apperror_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-erp/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps code and details", func(t *testing.T) {
		err := apperror.New(apperror.CodeConflict, "already matched", http.StatusConflict).
			WithDetails(map[string]any{"transaction_id": "tx-1"})

		got := apperror.ToHTTP(fmt.Errorf("wrapped: %w", err))

		assert.Equal(t, http.StatusConflict, got.Status)
		assert.Equal(t, apperror.CodeConflict, got.Code)
		assert.Equal(t, "already matched", got.Message)
		assert.NotNil(t, got.Details)
	})

	t.Run("unknown error is hidden", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
		assert.NotContains(t, got.Message, "pq")
	})

	t.Run("cancelled context", func(t *testing.T) {
		got := apperror.ToHTTP(context.Canceled)
		assert.Equal(t, http.StatusServiceUnavailable, got.Status)
	})
}

func TestUpstream(t *testing.T) {
	t.Run("fallback message", func(t *testing.T) {
		err := apperror.Upstream(http.StatusInternalServerError, "", nil)
		assert.Equal(t, apperror.FallbackMessage, err.Message)
		assert.Equal(t, http.StatusBadGateway, err.HTTPStatus)
	})

	t.Run("server message and client status", func(t *testing.T) {
		err := apperror.Upstream(http.StatusUnprocessableEntity, "Tên đã tồn tại", nil)
		assert.Equal(t, "Tên đã tồn tại", err.Message)
		assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
		assert.Equal(t, apperror.CodeInvalidInput, err.Code)
	})

	t.Run("not found", func(t *testing.T) {
		err := apperror.Upstream(http.StatusNotFound, "", nil)
		assert.Equal(t, apperror.CodeNotFound, err.Code)
	})
}

func TestAppError_Is(t *testing.T) {
	base := apperror.New(apperror.CodeInvalidState, "contract already paid", http.StatusBadRequest)
	withDetails := base.WithDetails("x")

	assert.True(t, errors.Is(withDetails, base))
	assert.False(t, errors.Is(withDetails, apperror.ErrNotFound))
}

func TestMapValidationError(t *testing.T) {
	type req struct {
		BasicSalary int64 `json:"basic_salary" validate:"required"`
	}

	err := validator.New().Struct(req{})

	mapped := apperror.MapValidationError(err)

	var appErr *apperror.AppError
	assert.True(t, errors.As(mapped, &appErr))
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	assert.Contains(t, appErr.Message, "is required")
}
