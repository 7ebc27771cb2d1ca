package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gaswhisperer/gaswhisperer/util/rate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
})

func TestGetIPAddress(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.168.1.10:4321"
	assert.Equal(t, "192.168.1.10", GetIPAddress(r))

	// public address in forwarded header
	r.Header.Set("X-Forwarded-For", "8.8.8.8, 10.0.0.1")
	assert.Equal(t, "8.8.8.8", GetIPAddress(r))

	// private addresses ignored
	r.Header.Set("X-Forwarded-For", "10.0.0.1")
	assert.Equal(t, "192.168.1.10", GetIPAddress(r))
}

func TestRequestID(t *testing.T) {
	var ctxReqID string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxReqID, _ = GetRequestIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, ctxReqID)
	assert.Equal(t, ctxReqID, w.Header().Get(HeaderRequestID))

	// client provided
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderRequestID, "req-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "req-123", ctxReqID)
	assert.Equal(t, "req-123", w.Header().Get(HeaderRequestID))
}

func TestRateLimit(t *testing.T) {
	h := Chain(okHandler, RealIP, RateLimit(rate.NewIpLimiter(1, 1)))

	serve := func(remoteAddr string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	assert.Equal(t, http.StatusOK, serve("1.2.3.4:1000").Code)

	w := serve("1.2.3.4:1001")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "too many requests", resp.Error)

	// other IP not affected
	assert.Equal(t, http.StatusOK, serve("5.6.7.8:1000").Code)

	// disabled
	h = Chain(okHandler, RealIP, RateLimit(nil))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve("1.2.3.4:1000").Code)
	}
}

func TestRecover(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), RequestID, Recover)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Error)
}

func TestStatusRecorder(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusBadRequest, errRateLimit)
	}), Log, Metrics("test"))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}
