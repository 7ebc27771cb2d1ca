package handlers

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Log logs the request and response status in debug level.
func Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !logrus.IsLevelEnabled(logrus.DebugLevel) {
			next.ServeHTTP(w, r)
			return
		}

		reqID, _ := GetRequestIDFromContext(r.Context())
		ipAddr, _ := GetIPAddressFromContext(r.Context())

		logger := logrus.WithFields(logrus.Fields{
			"requestId": reqID,
			"ipAddress": ipAddr,
			"method":    r.Method,
			"path":      r.URL.Path,
		})
		logger.Debug("HTTP enter")

		start := time.Now()
		sr := newStatusRecorder(w)
		next.ServeHTTP(sr, r)

		logger.WithFields(logrus.Fields{
			"status":  sr.status,
			"elapsed": time.Since(start),
		}).Debug("HTTP leave")
	})
}
