package middleware

import (
	"io"
	"net/http"
)

// DrainRequestBody reads whatever the handler left in the request body
// and closes it, so the underlying connection can be reused.
func DrainRequestBody() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil {
				return
			}
			_, _ = io.Copy(io.Discard, r.Body)
			_ = r.Body.Close()
		})
	}
}
