package handlers

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

var errHandlerCrashed = errors.New("internal server error")

// Recover recovers from panic and responds with internal server error.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}

				reqID, _ := GetRequestIDFromContext(r.Context())
				ipAddr, _ := GetIPAddressFromContext(r.Context())

				logrus.WithFields(logrus.Fields{
					"requestId": reqID,
					"ipAddress": ipAddr,
					"method":    r.Method,
					"path":      r.URL.Path,
					"panicErr":  err,
					"stack":     string(debug.Stack()),
				}).Error("HTTP handler panic recovered")

				WriteError(w, http.StatusInternalServerError, errHandlerCrashed)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
