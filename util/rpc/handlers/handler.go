package handlers

import (
	"net/http"
)

type Middleware func(next http.Handler) http.Handler

type CtxKey string

const (
	CtxKeyRealIP    = CtxKey("GasWhisperer-Real-IP")
	CtxKeyRequestID = CtxKey("GasWhisperer-Request-ID")
)

// Chain wraps the handler with middlewares, which are executed in order.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}

	return h
}

// statusRecorder records the response status code for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	if sr, ok := w.(*statusRecorder); ok {
		return sr
	}

	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
