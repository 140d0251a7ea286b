// Package handlers adapts HTTP requests to service calls: decode and validate
// the body, call the service, wrap the result in the response envelope.
package handlers

import (
	"net/http"

	"finpal-server/src/apperr"
	"finpal-server/src/middleware"
	"finpal-server/src/models"
)

func claimsFrom(r *http.Request) (models.Claims, error) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return models.Claims{}, apperr.Authentication("No token provided", nil)
	}
	return claims, nil
}
