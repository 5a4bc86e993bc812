package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/fofa-cli/internal/http"
	"github.com/fivetwenty-io/fofa-cli/pkg/fofa"
)

// Client implements the fofa.Client interface.
type Client struct {
	httpClient  *http.Client
	credentials fofa.Credentials
	baseURL     string
	logger      fofa.Logger
}

var _ fofa.Client = (*Client)(nil)

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *fofa.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))
	}

	return httpOpts
}

// New creates a new FOFA API client. Credentials must already be resolved.
func New(config *fofa.Config) (*Client, error) {
	if !config.Credentials.Valid() {
		return nil, fofa.NewConfigurationError("email and key are both required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = fofa.DefaultBaseURL
	}

	return &Client{
		httpClient:  http.NewClient(baseURL, createHTTPClientOptions(config)...),
		credentials: config.Credentials,
		baseURL:     baseURL,
		logger:      config.Logger,
	}, nil
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get performs one authenticated call and decodes the body into out. The raw
// body is returned for callers that dump it.
func (c *Client) get(ctx context.Context, path string, params fofa.Params, out interface{}) ([]byte, error) {
	resp, err := c.httpClient.Get(ctx, path, params.WithCredentials(c.credentials))
	if err != nil {
		return nil, err
	}

	err = resp.Decode(out)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// loggerAdapter adapts fofa.Logger to http.Logger.
type loggerAdapter struct {
	logger fofa.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}

func (c *Client) logDebug(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}

func sizeField(size int) map[string]interface{} {
	return map[string]interface{}{
		"requested": size,
		"effective": fofa.ClampSize(size),
	}
}

func clampNotice(size int) string {
	return fmt.Sprintf("size %d exceeds maximum, using %d", size, fofa.MaxPageSize)
}
