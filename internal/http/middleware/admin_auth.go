package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims is the validated token payload attached to requests that
// pass the admin gate. The owner dashboard is the only issuer, so the
// registered claims are all we carry.
type AdminClaims struct {
	jwt.RegisteredClaims
}

type adminCtxKey int

const adminClaimsCtxKey adminCtxKey = iota

// AdminJWT guards the owner dashboard routes with an HMAC-signed bearer
// token. An empty secret means the admin surface is not configured;
// every request is refused rather than let through unsigned.
func AdminJWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				respondError(w, http.StatusUnauthorized, "admin access is not configured")
				return
			}
			raw, ok := bearerToken(r)
			if !ok {
				respondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims := &AdminClaims{}
			token, err := jwt.ParseWithClaims(raw, claims,
				func(*jwt.Token) (any, error) { return []byte(secret), nil },
				jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
			)
			if err != nil || !token.Valid {
				respondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), adminClaimsCtxKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminClaimsFromContext returns the claims stored by AdminJWT, or ok
// false outside an authenticated admin request.
func AdminClaimsFromContext(ctx context.Context) (*AdminClaims, bool) {
	claims, ok := ctx.Value(adminClaimsCtxKey).(*AdminClaims)
	return claims, ok
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(auth, prefix))
	return token, token != ""
}
