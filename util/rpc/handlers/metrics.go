package handlers

import (
	"net/http"
	"time"

	"github.com/gaswhisperer/gaswhisperer/util/metrics"
)

// Metrics times the handling of route by response status.
func Metrics(route string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := newStatusRecorder(w)

			next.ServeHTTP(sr, r)

			metrics.Registry.HTTP.Duration(route, sr.status).UpdateSince(start)
		})
	}
}
