package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"go-commission/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status and code", func(t *testing.T) {
		res := apperror.ToHTTP(apperror.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, res.Status)
		assert.Equal(t, apperror.CodeNotFound, res.Code)
	})

	t.Run("wrapped app error is unwrapped", func(t *testing.T) {
		err := fmt.Errorf("load sale: %w", apperror.ErrForbidden)
		res := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusForbidden, res.Status)
	})

	t.Run("unknown error hides its message", func(t *testing.T) {
		res := apperror.ToHTTP(errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, res.Status)
		assert.Equal(t, apperror.CodeInternalError, res.Code)
		assert.NotContains(t, res.Message, "pq")
	})
}

func TestAppError_WithDetailsStillMatches(t *testing.T) {
	err := apperror.ErrInvalidInput.WithDetails(map[string]string{"field": "amount"})
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	assert.NotNil(t, apperror.ToHTTP(err).Details)
}

func TestMapValidationError(t *testing.T) {
	type payload struct {
		TotalFee string `json:"total_fee" validate:"required"`
		Email    string `json:"email" validate:"email"`
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	err := v.Struct(payload{Email: "x"})

	mapped := apperror.MapValidationError(err)
	var appErr *apperror.AppError
	assert.True(t, errors.As(mapped, &appErr))
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	assert.Equal(t, "Total Fee is required", appErr.Message)
}
