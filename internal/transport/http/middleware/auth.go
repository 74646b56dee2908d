package middleware

import (
	"context"
	"net/http"
	"strings"

	"ems/internal/auth"
)

type ctxKey string

const ctxKeyUser ctxKey = "user"

// Auth parses the Authorization header and attaches the claims to the
// request context. Both the "Token" and "Bearer" schemes are accepted; older
// client builds send the former. Requests without a valid token pass through
// anonymous, handlers decide whether that is acceptable.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			scheme := strings.ToLower(parts[0])
			if len(parts) != 2 || (scheme != "token" && scheme != "bearer") {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ctxKeyUser).(*auth.Claims)
	return claims, ok
}
