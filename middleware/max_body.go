package middleware

import (
	"net/http"
	"os"
	"strconv"
)

// MaxBodyMiddleware caps request body size. Payloads here are small
// JSON documents; the default of 256 KiB is generous. Override with
// MAX_BODY_BYTES.
func MaxBodyMiddleware(next http.Handler) http.Handler {
	max := int64(256 << 10)
	if s := os.Getenv("MAX_BODY_BYTES"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil && v > 0 {
			max = v
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, max)
		next.ServeHTTP(w, r)
	})
}
