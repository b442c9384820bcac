package middleware

import (
	"net/http"
	"strings"
)

// CORS sets Access-Control-* headers for the frontend origin and handles
// OPTIONS preflight. Empty allowedOrigins disables the middleware.
func CORS(allowedOrigins []string) func(next http.Handler) http.Handler {
	originsSet := make(map[string]bool)
	for _, o := range allowedOrigins {
		originsSet[strings.TrimSpace(o)] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(originsSet) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			origin := r.Header.Get("Origin")
			if origin != "" && originsSet[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.Header().Set("Access-Control-Max-Age", "86400")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
