package handlers

import (
	"errors"
	"net/http"

	"github.com/gaswhisperer/gaswhisperer/util/metrics"
	"github.com/gaswhisperer/gaswhisperer/util/rate"
)

var errRateLimit = errors.New("too many requests")

// RateLimit limits requests per remote IP address. Note, `RealIP` middleware
// is required to run ahead.
func RateLimit(limiter *rate.IpLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, ok := GetIPAddressFromContext(r.Context())
			if !ok {
				ip = GetIPAddress(r)
			}

			if !limiter.Allow(ip, 1) {
				metrics.Registry.HTTP.RateLimited().Mark(1)
				WriteError(w, http.StatusTooManyRequests, errRateLimit)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
