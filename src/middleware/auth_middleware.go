package middleware

import (
	"context"
	"net/http"

	"finpal-server/src/models"
	"finpal-server/src/util"
)

type contextKey string

const claimsKey contextKey = "claims"

// TokenVerifier turns an Authorization header value into verified claims.
type TokenVerifier interface {
	VerifyHeader(ctx context.Context, header string) (*models.Claims, error)
}

// JWTAuthMiddleware rejects requests without a valid bearer token and stores
// the verified claims on the request context.
func JWTAuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := verifier.VerifyHeader(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				util.WriteError(w, r, err)
				return
			}

			r = r.WithContext(WithClaims(r.Context(), *claims))
			next.ServeHTTP(w, r)
		})
	}
}

func WithClaims(ctx context.Context, claims models.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the claims stored by JWTAuthMiddleware.
func ClaimsFromContext(ctx context.Context) (models.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(models.Claims)
	return claims, ok
}
