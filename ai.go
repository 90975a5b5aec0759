package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// textGenerator is the external AI capability: system + user prompt in,
// completion text out. Implementations return *serviceError when the call
// itself fails.
type textGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// serviceError reports a failed text-generation call (transport error,
// non-200 status, or an empty/undecodable envelope).
type serviceError struct {
	StatusCode int // 0 when no HTTP response was received
	Err        error
}

func (e *serviceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("ai service returned status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("ai service: %v", e.Err)
}

func (e *serviceError) Unwrap() error { return e.Err }

/* ─── Chat completions client ────────────────────────────────────────── */

// chatMessage is a single message in the chat completions request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body for the chat completions API.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatClient calls an OpenAI-compatible /v1/chat/completions endpoint with
// raw net/http. No retries; the 15s client timeout is the only deadline
// besides the request context.
type chatClient struct {
	baseURL    string // overridable for tests
	apiKey     string
	model      string
	httpClient *http.Client
}

func newChatClient(baseURL, apiKey, model string) *chatClient {
	return &chatClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// GenerateText sends one system+user exchange and returns choices[0].message.content.
func (c *chatClient) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" {
		return "", &serviceError{Err: fmt.Errorf("AI_API_KEY not set")}
	}

	bodyBytes, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", &serviceError{Err: fmt.Errorf("marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", &serviceError{Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &serviceError{Err: fmt.Errorf("http request: %w", err)}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &serviceError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &serviceError{StatusCode: resp.StatusCode, Err: fmt.Errorf("%s", truncate(string(respBytes), 200))}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", &serviceError{StatusCode: resp.StatusCode, Err: fmt.Errorf("unmarshal response: %w", err)}
	}
	if len(result.Choices) == 0 {
		return "", &serviceError{StatusCode: resp.StatusCode, Err: fmt.Errorf("no choices in response")}
	}

	return result.Choices[0].Message.Content, nil
}

// truncate shortens s to at most n bytes for log and error messages.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
