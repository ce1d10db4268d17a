package httpx

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v as JSON with the given status code and no-cache headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteProblem writes the service error body {"error": code, "detail": detail}.
func WriteProblem(w http.ResponseWriter, status int, code, detail string) {
	WriteJSON(w, status, map[string]string{
		"error":  code,
		"detail": detail,
	})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// Token and profile responses always go through this.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
