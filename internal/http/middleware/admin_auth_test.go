package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminToken(t *testing.T, secret string, expiresIn time.Duration) string {
	t.Helper()
	claims := AdminClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "owner",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func unsignedAdminToken(t *testing.T) string {
	t.Helper()
	claims := AdminClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "owner",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	return signed
}

func TestAdminJWTRejections(t *testing.T) {
	cases := []struct {
		name   string
		secret string
		header string
	}{
		{name: "unconfigured secret refuses everything", secret: "", header: ""},
		{name: "no authorization header", secret: "s3cret", header: ""},
		{name: "not a bearer scheme", secret: "s3cret", header: "Basic b3duZXI="},
		{name: "empty bearer token", secret: "s3cret", header: "Bearer "},
		{name: "garbage token", secret: "s3cret", header: "Bearer not.a.jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gate := AdminJWT(tc.secret)
			req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			reached := false
			gate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				reached = true
			})).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, reached, "gate must not pass the request through")
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestAdminJWTRejectsBadSignatures(t *testing.T) {
	cases := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{name: "wrong secret", token: func(t *testing.T) string {
			return adminToken(t, "someone-elses-secret", time.Hour)
		}},
		{name: "expired token", token: func(t *testing.T) string {
			return adminToken(t, "s3cret", -time.Minute)
		}},
		{name: "alg none", token: unsignedAdminToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gate := AdminJWT("s3cret")
			req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token(t))
			rec := httptest.NewRecorder()

			gate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Fatal("gate must not pass the request through")
			})).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAdminJWTAcceptsValidTokenAndExposesClaims(t *testing.T) {
	gate := AdminJWT("s3cret")
	req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, "s3cret", time.Hour))
	rec := httptest.NewRecorder()

	gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := AdminClaimsFromContext(r.Context())
		require.True(t, ok, "claims should be on the request context")
		assert.Equal(t, "owner", claims.Subject)
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminClaimsFromContextOutsideGate(t *testing.T) {
	_, ok := AdminClaimsFromContext(t.Context())
	assert.False(t, ok)
}
