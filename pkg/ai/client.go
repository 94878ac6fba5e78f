// Package ai calls an OpenAI-compatible chat completions endpoint to turn
// raw resume text into a JSON document following the resume schema.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

func New(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		FinishReason string `json:"finish_reason"`
		Message      struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Result is the raw model output for one resume plus the reason the model
// stopped, which callers log to spot truncated replies.
type Result struct {
	Content      []byte
	FinishReason string
}

// ParseResume asks the model to restate the resume text as JSON following
// the given schema. The returned content is the first choice's message with
// any surrounding markdown code fence stripped.
func (c *Client) ParseResume(ctx context.Context, owner, resumeText string, schemaJSON []byte) (*Result, error) {
	prompt := fmt.Sprintf("Parse %s's resume by using the JSON format below.\n\n%s\n\n%s",
		owner, resumeText, schemaJSON)

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Temperature: 1,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.doPostWithRetry(ctx, "/v1/chat/completions", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var out chatResponse
	if err := json.Unmarshal(rb, &out); err != nil {
		return nil, fmt.Errorf("decode completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil {
			return nil, fmt.Errorf("completion request failed: %s (status %d)", out.Error.Message, resp.StatusCode)
		}
		return nil, fmt.Errorf("completion request failed with status %d", resp.StatusCode)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("completion response has no choices")
	}

	choice := out.Choices[0]
	return &Result{
		Content:      []byte(stripCodeFence(choice.Message.Content)),
		FinishReason: choice.FinishReason,
	}, nil
}

// doPostWithRetry performs an HTTP POST to the given path with retry/backoff
// on transport errors.
func (c *Client) doPostWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	attempts := 3
	var lastErr error
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.http.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(1<<i) * 500 * time.Millisecond):
			}
		}
	}
	return nil, fmt.Errorf("request to %s failed after %d attempts: %w", path, attempts, lastErr)
}

// stripCodeFence removes a ```json ... ``` wrapper some models put around
// their output.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 && !strings.ContainsAny(s[:idx], "{[") {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
