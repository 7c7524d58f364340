package middleware

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

// LogRequest traces every incoming request. Health probes are skipped,
// the mobile app polls /health and would drown out the real traffic.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			log.Tracef(" ====> request [%s] path: [%s] [UA: %s] [addr: %s]",
				r.Method, r.URL.RequestURI(), r.Header.Get("User-Agent"), r.RemoteAddr,
			)
			next.ServeHTTP(w, r)
		})
	}
}
