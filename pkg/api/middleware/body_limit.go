package middleware

import (
	"net/http"
)

const bodyTooLargeBody = `{"error":"Request Entity Too Large","message":"request body too large","code":413}` + "\n"

// BodySizeLimit rejects requests whose declared Content-Length exceeds maxBytes
// and caps the body reader for chunked or mislabeled uploads. maxBytes <= 0
// disables the limit.
func BodySizeLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if maxBytes <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				w.Write([]byte(bodyTooLargeBody))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
