package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey int

const tokenKey ctxKey = iota

// BearerToken extracts the `Authorization: Bearer <token>` header and
// injects the raw token into the request context. Verification happens
// in the service layer; this only rejects requests with no usable
// credential at all.
func BearerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			http.Error(w, `{"error":"Invalid token"}`, http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TokenFromContext returns the bearer token stored by BearerToken, or
// "" when the request carried none.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
