package httpx

import (
	"mime"
	"net/http"
)

// MaxFormMemory bounds the in-memory part of a multipart form.
const MaxFormMemory = 1 << 20

// ParseForm parses URL-encoded and multipart bodies alike, so r.PostForm
// holds the fields either way. Calling it again is a no-op.
func ParseForm(r *http.Request) error {
	if ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); ct == "multipart/form-data" {
		return r.ParseMultipartForm(MaxFormMemory)
	}
	return r.ParseForm()
}
