package middleware

import (
	"net/http"
	"strings"
)

// StripStagePrefix removes a deployment stage segment (e.g. "/prod") from the
// front of the path so routes match with or without it.
func StripStagePrefix(stage string) func(http.Handler) http.Handler {
	stage = strings.Trim(stage, "/")
	return func(next http.Handler) http.Handler {
		if stage == "" {
			return next
		}
		prefix := "/" + stage
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				stripped := strings.TrimPrefix(path, prefix)
				if stripped == "" {
					stripped = "/"
				}
				r2 := r.Clone(r.Context())
				r2.URL.Path = stripped
				r2.URL.RawPath = ""
				r = r2
			}
			next.ServeHTTP(w, r)
		})
	}
}
