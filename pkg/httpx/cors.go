package httpx

import (
	"net/http"
	"slices"
	"strings"
)

// CORSConfig describes the cross-origin policy.
type CORSConfig struct {
	// AllowedOrigins holds exact origins, or "*" to allow any.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         string
}

// DefaultCORSMethods and DefaultCORSHeaders match what the web client sends.
var (
	DefaultCORSMethods = []string{"POST", "GET", "PUT", "PATCH", "DELETE", "OPTIONS"}
	DefaultCORSHeaders = []string{"Content-Type", "Authorization"}
)

// ParseOrigins splits a comma separated origin list, dropping blanks.
func ParseOrigins(s string) []string {
	var out []string
	for o := range strings.SplitSeq(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// CORS answers preflight requests and decorates actual responses.
// Preflights answer "*" for a wildcard policy, echo the origin when it is listed
// and otherwise fall back to the first configured origin.
func CORS(cfg CORSConfig) Middleware {
	if len(cfg.AllowedMethods) == 0 {
		cfg.AllowedMethods = DefaultCORSMethods
	}
	if len(cfg.AllowedHeaders) == 0 {
		cfg.AllowedHeaders = DefaultCORSHeaders
	}
	if cfg.MaxAge == "" {
		cfg.MaxAge = "600"
	}
	anyOrigin := len(cfg.AllowedOrigins) == 0 || slices.Contains(cfg.AllowedOrigins, "*")
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")

	allowed := func(origin string) bool {
		return anyOrigin || slices.Contains(cfg.AllowedOrigins, origin)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			h := w.Header()

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				var allowOrigin string
				switch {
				case anyOrigin:
					allowOrigin = "*"
				case slices.Contains(cfg.AllowedOrigins, origin):
					allowOrigin = origin
				default:
					allowOrigin = cfg.AllowedOrigins[0]
				}
				h.Set("Access-Control-Allow-Origin", allowOrigin)
				h.Set("Access-Control-Allow-Methods", methods)
				h.Set("Access-Control-Allow-Headers", headers)
				h.Set("Access-Control-Max-Age", cfg.MaxAge)
				h.Add("Vary", "Origin")
				w.WriteHeader(http.StatusOK)
				return
			}

			if origin != "" && allowed(origin) {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}
			next.ServeHTTP(w, r)
		})
	}
}
