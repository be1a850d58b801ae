package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/income-strategist/internal/strategist"
	"github.com/jonathan/income-strategist/internal/types"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "goal", Message: "must be positive"}
	assert.Equal(t, "validation error: goal - must be positive", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "ErrValidation",
			err:      &ErrValidation{Field: "skills", Message: "required"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "validator errors",
			err:      (&types.ReportRequest{}).Validate(),
			expected: http.StatusBadRequest,
		},
		{
			name:     "ConfigError",
			err:      &strategist.ConfigError{Message: "missing key"},
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "wrapped GenerationError",
			err:      fmt.Errorf("submit: %w", &strategist.GenerationError{Cause: errors.New("x")}),
			expected: http.StatusBadGateway,
		},
		{
			name:     "Unknown error",
			err:      assert.AnError,
			expected: http.StatusInternalServerError,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestRequestError(t *testing.T) {
	err := (&types.ReportRequest{Skills: "Go", Goal: -1}).Validate()
	var fieldErrs validator.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)

	verr := requestError(err)
	assert.Equal(t, "goal", verr.Field)
	assert.Equal(t, "Passive income goal must be a positive number.", verr.Message)

	verr = requestError(errors.New("odd"))
	assert.Equal(t, "body", verr.Field)
}
