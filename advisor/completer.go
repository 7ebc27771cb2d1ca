package advisor

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/valyala/fasthttp"
)

const (
	completionMaxTokens   = 60
	completionTemperature = 0
)

// Completer completes the prompt with a short text answer.
type Completer interface {
	Complete(ctx context.Context, apiKey, prompt string) (string, error)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// OpenAICompleter completes prompts with OpenAI compatible chat completions API.
type OpenAICompleter struct {
	client  *fasthttp.Client
	url     string
	model   string
	timeout time.Duration
}

func NewOpenAICompleter(baseUrl, model string, timeout time.Duration) *OpenAICompleter {
	return &OpenAICompleter{
		client:  &fasthttp.Client{Name: "gaswhisperer"},
		url:     strings.TrimSuffix(baseUrl, "/") + "/chat/completions",
		model:   model,
		timeout: timeout,
	}
}

// Complete implements the `Completer` interface.
func (c *OpenAICompleter) Complete(ctx context.Context, apiKey, prompt string) (string, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   completionMaxTokens,
		Temperature: completionTemperature,
	})
	if err != nil {
		return "", errors.WithMessage(err, "failed to encode completion request")
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+apiKey)
	req.SetBody(body)

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return "", errors.WithMessage(err, "failed to request completion")
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", errors.WithMessagef(err, "invalid completion response with status %v", resp.StatusCode())
	}

	if status := resp.StatusCode(); status < 200 || status >= 300 {
		if result.Error != nil {
			return "", errors.Errorf("completion failed with status %v: %v", status, result.Error.Message)
		}

		return "", errors.Errorf("completion failed with status %v", status)
	}

	if len(result.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}

	text := strings.TrimSpace(result.Choices[0].Message.Content)
	if len(text) == 0 {
		return "", errors.New("empty completion returned")
	}

	return text, nil
}
