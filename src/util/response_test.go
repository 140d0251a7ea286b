package util

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"finpal-server/src/apperr"

	"github.com/stretchr/testify/assert"
)

func TestWriteSuccessNullData(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, http.StatusOK, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":null}`, rec.Body.String())
}

func TestWriteErrorHidesCause(t *testing.T) {
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{apperr.Authorization(), 403, `{"success":false,"error":"Unauthorized"}`},
		{apperr.Authentication("Invalid token", errors.New("crypto/rsa: verification error")), 401, `{"success":false,"error":"Invalid token"}`},
		{apperr.Store("Failed to add spending entry", errors.New("pq: password authentication failed")), 500, `{"success":false,"error":"Failed to add spending entry"}`},
		{errors.New("panic detail"), 500, `{"success":false,"error":"Internal server error"}`},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteError(rec, httptest.NewRequest(http.MethodGet, "/x", nil), tc.err)
		assert.Equal(t, tc.status, rec.Code)
		assert.JSONEq(t, tc.body, rec.Body.String())
	}
}
