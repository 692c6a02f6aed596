package middleware

import (
	"encoding/json"
	"net/http"
)

// respondError mirrors the handlers' error envelope so middleware
// rejections look the same to API clients.
func respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
