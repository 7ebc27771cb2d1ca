package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-Id"

// maxRequestIDLen limits the length of client provided request id.
const maxRequestIDLen = 64

// RequestID tags each request with an id, which is either provided by client via
// `X-Request-Id` header or generated randomly, and echoes it in response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(HeaderRequestID)
		if len(reqID) == 0 || len(reqID) > maxRequestIDLen {
			reqID = uuid.NewString()
		}

		w.Header().Set(HeaderRequestID, reqID)

		ctx := context.WithValue(r.Context(), CtxKeyRequestID, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(CtxKeyRequestID).(string)
	return val, ok
}
