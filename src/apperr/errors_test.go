package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{Authentication("Invalid token", nil), http.StatusUnauthorized},
		{Authorization(), http.StatusForbidden},
		{NotFound("Savings goal not found"), http.StatusNotFound},
		{Validation("amount is required", nil), http.StatusBadRequest},
		{Generation("empty response", nil), http.StatusInternalServerError},
		{Store("Failed to save entry", errors.New("conn refused")), http.StatusInternalServerError},
		{RateLimited(), http.StatusTooManyRequests},
		{ReadOnly(), http.StatusForbidden},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.err.Status(), c.err.Message)
	}
}

func TestPublicHidesCause(t *testing.T) {
	wrapped := fmt.Errorf("submit quiz: %w", Store("Failed to save quiz", errors.New("pq: password authentication failed")))

	status, msg := Public(wrapped)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to save quiz", msg)
	assert.Contains(t, wrapped.Error(), "password authentication failed")
}

func TestPublicUnknownError(t *testing.T) {
	status, msg := Public(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", msg)
}

