package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAICompleter(t *testing.T) {
	var received chatCompletionRequest
	var authorization string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		authorization = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&received)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Gas stable, 60% confidence \n"}}]}`))
	}))
	defer server.Close()

	completer := NewOpenAICompleter(server.URL+"/v1/", "test-model", 5*time.Second)

	text, err := completer.Complete(context.Background(), "sk-test", "hello")
	require.NoError(t, err)
	assert.Equal(t, "Gas stable, 60% confidence", text)

	assert.Equal(t, "Bearer sk-test", authorization)
	assert.Equal(t, "test-model", received.Model)
	assert.Equal(t, 60, received.MaxTokens)
	assert.Zero(t, received.Temperature)
	assert.Equal(t, []chatMessage{{Role: "user", Content: "hello"}}, received.Messages)
}

func TestOpenAICompleterErrors(t *testing.T) {
	testCases := []struct {
		status int
		body   string
	}{
		{http.StatusUnauthorized, `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`},
		{http.StatusInternalServerError, `internal error`},
		{http.StatusOK, `{"choices":[]}`},
		{http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"  "}}]}`},
	}

	for _, tc := range testCases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(tc.body))
		}))

		_, err := NewOpenAICompleter(server.URL, "test-model", 5*time.Second).
			Complete(context.Background(), "sk-test", "hello")
		assert.Error(t, err, tc.body)

		server.Close()
	}
}

func TestOpenAICompleterTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	_, err := NewOpenAICompleter(server.URL, "test-model", 50*time.Millisecond).
		Complete(context.Background(), "sk-test", "hello")
	assert.Error(t, err)
}
