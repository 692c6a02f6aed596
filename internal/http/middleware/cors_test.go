package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSOriginHandling(t *testing.T) {
	cases := []struct {
		name        string
		allowed     []string
		origin      string
		wantAllowed string
	}{
		{
			name:        "listed origin is echoed",
			allowed:     []string{"https://mirrorfinish.example"},
			origin:      "https://mirrorfinish.example",
			wantAllowed: "https://mirrorfinish.example",
		},
		{
			name:        "unlisted origin gets no headers",
			allowed:     []string{"https://mirrorfinish.example"},
			origin:      "https://evil.example",
			wantAllowed: "",
		},
		{
			name:        "wildcard echoes any origin",
			allowed:     []string{"*"},
			origin:      "https://anywhere.example",
			wantAllowed: "https://anywhere.example",
		},
		{
			name:        "same-origin request without Origin header",
			allowed:     []string{"https://mirrorfinish.example"},
			origin:      "",
			wantAllowed: "",
		},
		{
			name:        "whitespace entries in the allowlist are ignored",
			allowed:     []string{"  ", "https://mirrorfinish.example"},
			origin:      "https://mirrorfinish.example",
			wantAllowed: "https://mirrorfinish.example",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reached := false
			h := CORS(tc.allowed)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/availability", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.True(t, reached, "non-preflight requests always reach the handler")
			assert.Equal(t, tc.wantAllowed, rec.Header().Get("Access-Control-Allow-Origin"))
			if tc.wantAllowed != "" {
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
			}
		})
	}
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	h := CORS([]string{"https://mirrorfinish.example"})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
	req.Header.Set("Origin", "https://mirrorfinish.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://mirrorfinish.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
