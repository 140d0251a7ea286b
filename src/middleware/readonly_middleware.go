package middleware

import (
	"net/http"

	"finpal-server/src/apperr"
	"finpal-server/src/util"
)

// ReadOnlyMiddleware rejects every write when enabled, e.g. for a public demo
// deployment or during a store migration.
func ReadOnlyMiddleware(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if enabled && r.Method != http.MethodGet && r.Method != http.MethodHead {
				util.WriteError(w, r, apperr.ReadOnly())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
