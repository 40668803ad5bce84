package middleware

import "net/http"

// MaxBodySize caps request bodies at maxBytes. Requests that declare an
// oversized body are rejected before the handler runs; chunked bodies are
// capped by MaxBytesReader and fail inside the handler's read. The subtitle
// upload route carries its own larger limit.
func MaxBodySize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				http.Error(w, `{"error":"request body too large"}`, http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
