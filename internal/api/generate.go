package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/routerchat/internal/errors"
	"github.com/diogo/routerchat/internal/models"
)

// maxErrorBody limits how much of an error response is kept for diagnostics
const maxErrorBody = 4096

// gjson paths into the chat-completion response
const (
	pathReplyContent = "choices.0.message.content"
	pathTotalTokens  = "usage.total_tokens"
	pathModel        = "model"
)

// Generate sends one chat-completion request and classifies the outcome.
// Every failure is terminal for the turn: no retry, no partial result.
func (c *Client) Generate(modelID string, window []models.Message) (*models.ChatReply, error) {
	if modelID == "" {
		return nil, fmt.Errorf("model id cannot be empty")
	}
	if len(window) == 0 {
		return nil, fmt.Errorf("context window cannot be empty")
	}

	payload, err := json.Marshal(models.ChatRequest{
		Model:    modelID,
		Messages: window,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, models.EndpointChatCompletions, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders(c.referrer, c.appTitle) {
		req.Header.Set(key, value)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, apierrors.NewTimeoutError(fmt.Sprintf("no response within %s", c.timeout))
		}
		return nil, apierrors.NewNetworkError("chat completion", models.EndpointChatCompletions, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode != 200 {
		body := readBody(resp, maxErrorBody)
		return nil, apierrors.FromStatusCode(resp.StatusCode, models.EndpointChatCompletions, string(body))
	}

	body := readBody(resp, 0)
	return parseReply(body)
}

// isTimeout reports whether a transport error is a deadline expiry
func isTimeout(err error) bool {
	if os.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	type timeouter interface{ Timeout() bool }
	var te timeouter
	return errors.As(err, &te) && te.Timeout()
}

// readBody drains the response body, optionally capped at limit bytes
func readBody(resp *http.Response, limit int) []byte {
	body := make([]byte, 0, 4096)
	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			body = append(body, buf[:n]...)
			if limit > 0 && len(body) >= limit {
				return body[:limit]
			}
		}
		if err != nil {
			break
		}
	}
	return body
}

// parseReply extracts the reply text and token usage from a 200 response
func parseReply(body []byte) (*models.ChatReply, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("response is not valid JSON", truncate(string(body), maxErrorBody))
	}

	parsed := gjson.ParseBytes(body)

	content := parsed.Get(pathReplyContent)
	if !content.Exists() {
		return nil, apierrors.NewParseError("response missing reply content", truncate(string(body), maxErrorBody))
	}

	// usage is optional; absent means zero tokens recorded
	tokens := int(parsed.Get(pathTotalTokens).Int())

	return &models.ChatReply{
		Text:        content.String(),
		TotalTokens: tokens,
		Model:       parsed.Get(pathModel).String(),
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
