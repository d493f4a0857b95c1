// Package api implements the OpenRouter chat-completion client.
package api

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	apierrors "github.com/diogo/routerchat/internal/errors"
	"github.com/diogo/routerchat/internal/models"
)

// DefaultTimeout is the fixed deadline for a chat-completion request.
// There is no retry; a request either completes or fails once.
const DefaultTimeout = 30 * time.Second

// Client is the OpenRouter API client
type Client struct {
	httpClient tls_client.HttpClient
	apiKey     string
	model      models.Model
	referrer   string
	appTitle   string
	timeout    time.Duration
	mu         sync.RWMutex
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithModel sets the default model for the client
func WithModel(model models.Model) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithTimeout overrides the request deadline
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithIdentification sets the caller-identification headers OpenRouter
// requires (HTTP-Referer and X-Title)
func WithIdentification(referrer, appTitle string) ClientOption {
	return func(c *Client) {
		c.referrer = referrer
		c.appTitle = appTitle
	}
}

// WithHTTPClient replaces the underlying transport
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Client. It fails closed when no API key is given:
// there is no embedded fallback credential.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("refusing to create client: %w", apierrors.ErrMissingCredential)
	}

	client := &Client{
		apiKey:   strings.TrimSpace(apiKey),
		model:    models.DefaultModel,
		referrer: models.DefaultReferrer,
		appTitle: models.DefaultAppTitle,
		timeout:  DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(client.timeout.Seconds())),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// GetModel returns the default model
func (c *Client) GetModel() models.Model {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// SetModel sets the default model
func (c *Client) SetModel(model models.Model) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = model
}

// Timeout returns the configured request deadline
func (c *Client) Timeout() time.Duration {
	return c.timeout
}
