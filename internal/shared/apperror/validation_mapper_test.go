package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type exportPayload struct {
	Provider    string `json:"provider" validate:"required"`
	PeriodStart string `json:"period_start" validate:"required,datetime=2006-01-02"`
	Status      string `json:"status" validate:"omitempty,oneof=draft exported synced"`
	Email       string `json:"email" validate:"omitempty,email"`
}

func newTestValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonTagName)
	return v
}

func TestMapValidationError(t *testing.T) {
	v := newTestValidator()

	t.Run("required", func(t *testing.T) {
		err := v.Struct(exportPayload{PeriodStart: "2024-01-15"})

		got := MapValidationError(err)

		assert.Equal(t, "Provider is required", got.Message)
		assert.Equal(t, http.StatusBadRequest, got.HTTPStatus)
	})

	t.Run("datetime", func(t *testing.T) {
		err := v.Struct(exportPayload{Provider: "xero", PeriodStart: "15/01/2024"})

		got := MapValidationError(err)

		assert.Equal(t, "Period Start must match 2006-01-02", got.Message)
	})

	t.Run("oneof", func(t *testing.T) {
		err := v.Struct(exportPayload{Provider: "xero", PeriodStart: "2024-01-15", Status: "paid"})

		got := MapValidationError(err)

		assert.Equal(t, "Status must be one of: draft, exported, synced", got.Message)
	})

	t.Run("other tags are invalid", func(t *testing.T) {
		err := v.Struct(exportPayload{Provider: "xero", PeriodStart: "2024-01-15", Email: "nope"})

		got := MapValidationError(err)

		assert.Equal(t, "Email is invalid", got.Message)
	})

	t.Run("non validator error", func(t *testing.T) {
		got := MapValidationError(errors.New("unexpected EOF"))

		assert.Equal(t, CodeInvalidInput, got.Code)
		assert.Equal(t, "Invalid input", got.Message)
	})
}
