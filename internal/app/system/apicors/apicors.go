// Package apicors provides CORS middleware for the API-key-authenticated
// JSON endpoints. API key auth carries no cookies, so origins can be fully
// open and credentials stay disallowed.
package apicors

import "net/http"

// Middleware returns permissive CORS middleware for API key authenticated
// endpoints. It allows any origin, the methods the API uses, and handles
// preflight OPTIONS requests directly.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept")
			w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
