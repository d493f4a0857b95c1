package api

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/routerchat/internal/errors"
	"github.com/diogo/routerchat/internal/models"
)

// testClient builds a Client wired to a mock transport
func testClient(mock *MockHttpClient) *Client {
	client, err := NewClient("sk-or-v1-test",
		WithHTTPClient(mock),
		WithTimeout(30*time.Second),
	)
	if err != nil {
		panic(err)
	}
	return client
}

func window(contents ...string) []models.Message {
	msgs := make([]models.Message, 0, len(contents))
	role := models.RoleUser
	for _, c := range contents {
		msgs = append(msgs, models.Message{Role: role, Content: c})
		if role == models.RoleUser {
			role = models.RoleAssistant
		} else {
			role = models.RoleUser
		}
	}
	return msgs
}

const successBody = `{
	"id": "gen-123",
	"model": "openai/gpt-3.5-turbo",
	"choices": [{"index": 0, "message": {"role": "assistant", "content": "Hi there"}, "finish_reason": "stop"}],
	"usage": {"prompt_tokens": 3, "completion_tokens": 4, "total_tokens": 7}
}`

const noUsageBody = `{
	"choices": [{"index": 0, "message": {"role": "assistant", "content": "Hi there"}}]
}`

func TestGenerate_Success(t *testing.T) {
	mock := NewMockHttpClient([]byte(successBody), 200)
	client := testClient(mock)

	reply, err := client.Generate("openai/gpt-3.5-turbo", window("Hello"))
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}
	if reply.Text != "Hi there" {
		t.Errorf("Text = %q, want %q", reply.Text, "Hi there")
	}
	if reply.TotalTokens != 7 {
		t.Errorf("TotalTokens = %d, want 7", reply.TotalTokens)
	}
	if reply.Model != "openai/gpt-3.5-turbo" {
		t.Errorf("Model = %q", reply.Model)
	}
}

func TestGenerate_UsageAbsentDefaultsToZero(t *testing.T) {
	mock := NewMockHttpClient([]byte(noUsageBody), 200)
	client := testClient(mock)

	reply, err := client.Generate("openai/gpt-3.5-turbo", window("Hello"))
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}
	if reply.TotalTokens != 0 {
		t.Errorf("TotalTokens = %d, want 0 when usage is absent", reply.TotalTokens)
	}
}

func TestGenerate_RequestShape(t *testing.T) {
	mock := NewMockHttpClient([]byte(successBody), 200)
	client := testClient(mock)

	msgs := window("Hello", "Hi", "How are you?")
	if _, err := client.Generate("mistralai/mistral-7b-instruct", msgs); err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}

	req := mock.LastRequest
	if req == nil {
		t.Fatal("no request recorded")
	}
	if req.Method != "POST" {
		t.Errorf("method = %q, want POST", req.Method)
	}
	if req.URL.String() != models.EndpointChatCompletions {
		t.Errorf("url = %q", req.URL.String())
	}
	if got := req.Header.Get("Authorization"); got != "Bearer sk-or-v1-test" {
		t.Errorf("Authorization = %q", got)
	}
	if got := req.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := req.Header.Get("HTTP-Referer"); got != models.DefaultReferrer {
		t.Errorf("HTTP-Referer = %q", got)
	}
	if got := req.Header.Get("X-Title"); got != models.DefaultAppTitle {
		t.Errorf("X-Title = %q", got)
	}
}

func TestGenerate_RequestBody(t *testing.T) {
	mock := NewMockHttpClient([]byte(successBody), 200)
	client := testClient(mock)

	msgs := window("Hello", "Hi", "How are you?")
	if _, err := client.Generate("mistralai/mistral-7b-instruct", msgs); err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}

	req := mock.LastRequest
	if req == nil || req.Body == nil {
		t.Fatal("no request body recorded")
	}
	raw := make([]byte, 0, 1024)
	buf := make([]byte, 512)
	for {
		n, err := req.Body.Read(buf)
		if n > 0 {
			raw = append(raw, buf[:n]...)
		}
		if err != nil {
			break
		}
	}

	parsed := gjson.ParseBytes(raw)
	if got := parsed.Get("model").String(); got != "mistralai/mistral-7b-instruct" {
		t.Errorf("body model = %q", got)
	}
	if got := int(parsed.Get("messages.#").Int()); got != 3 {
		t.Errorf("body has %d messages, want 3", got)
	}
	if got := parsed.Get("messages.0.role").String(); got != "user" {
		t.Errorf("messages[0].role = %q", got)
	}
	if got := parsed.Get("messages.2.content").String(); got != "How are you?" {
		t.Errorf("messages[2].content = %q", got)
	}
	if parsed.Get("messages.0.tokens").Exists() {
		t.Error("token counts must not be sent upstream")
	}
}

func TestGenerate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		modelID string
		window  []models.Message
	}{
		{"empty model id", "", window("Hello")},
		{"empty window", "openai/gpt-3.5-turbo", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockHttpClient([]byte(successBody), 200)
			client := testClient(mock)

			if _, err := client.Generate(tt.modelID, tt.window); err == nil {
				t.Error("expected validation error")
			}
			if mock.LastRequest != nil {
				t.Error("validation failure must not issue an HTTP request")
			}
		})
	}
}

func TestGenerate_StatusClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{"401 auth", 401, `{"error":"bad key"}`, apierrors.IsAuthError},
		{"402 payment", 402, `{"error":"no credits"}`, apierrors.IsPaymentError},
		{"429 rate limit", 429, `{"error":"slow down"}`, apierrors.IsRateLimitError},
		{"500 api error", 500, "internal", func(err error) bool {
			return apierrors.GetHTTPStatus(err) == 500 &&
				apierrors.GetResponseBody(err) == "internal"
		}},
		{"404 api error", 404, "not found", func(err error) bool {
			return apierrors.GetHTTPStatus(err) == 404
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockHttpClient([]byte(tt.body), tt.status)
			client := testClient(mock)

			_, err := client.Generate("openai/gpt-3.5-turbo", window("Hello"))
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Errorf("classification check failed: %v", err)
			}
		})
	}
}

func TestGenerate_TransportErrors(t *testing.T) {
	t.Run("connection failure", func(t *testing.T) {
		mock := NewMockHttpClientWithError(errors.New("connection refused"))
		client := testClient(mock)

		_, err := client.Generate("openai/gpt-3.5-turbo", window("Hello"))
		if !apierrors.IsNetworkError(err) {
			t.Errorf("expected network error, got %v", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		mock := NewMockHttpClientWithError(&net.DNSError{IsTimeout: true})
		client := testClient(mock)

		_, err := client.Generate("openai/gpt-3.5-turbo", window("Hello"))
		if !apierrors.IsTimeoutError(err) {
			t.Errorf("expected timeout error, got %v", err)
		}
	})
}

func TestGenerate_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>gateway</html>"},
		{"empty choices", `{"choices": []}`},
		{"missing message", `{"choices": [{"index": 0}]}`},
		{"missing content", `{"choices": [{"message": {"role": "assistant"}}]}`},
		{"wrong shape", `{"detail": "unexpected"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockHttpClient([]byte(tt.body), 200)
			client := testClient(mock)

			_, err := client.Generate("openai/gpt-3.5-turbo", window("Hello"))
			if err == nil {
				t.Fatal("expected parse error")
			}
			if !apierrors.IsParseError(err) {
				t.Errorf("expected parse error, got %v", err)
			}
		})
	}
}

func TestParseReply_KeepsBodyForDiagnostics(t *testing.T) {
	body := `{"detail": "unexpected"}`
	_, err := parseReply([]byte(body))
	if err == nil {
		t.Fatal("expected error")
	}
	if got := apierrors.GetResponseBody(err); got != body {
		t.Errorf("GetResponseBody() = %q, want original body", got)
	}
}
