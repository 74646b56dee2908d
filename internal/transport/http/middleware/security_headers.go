package middleware

import "net/http"

var baseSecurityHeaders = map[string]string{
	"X-Content-Type-Options":       "nosniff",
	"X-Frame-Options":              "DENY",
	"Referrer-Policy":              "no-referrer",
	"Cross-Origin-Resource-Policy": "same-origin",
	// JSON API carrying personnel data; never let intermediaries cache it.
	"Cache-Control": "no-store",
}

// SecureHeaders sets baseline hardening headers on every response. HSTS is
// only emitted when the server actually terminates TLS.
func SecureHeaders(hsts bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for name, value := range baseSecurityHeaders {
				w.Header().Set(name, value)
			}
			if hsts {
				w.Header().Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}
