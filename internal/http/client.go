package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/fofa-cli/internal/constants"
	"github.com/fivetwenty-io/fofa-cli/pkg/fofa"
	"github.com/hashicorp/go-retryablehttp"
)

// Logger receives request and response traces.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Client performs single GET calls against the FOFA API and turns every
// outcome into either a decoded body or a *fofa.Error.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
	logger     Logger
	debug      bool
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithHTTPClient uses a copy of httpClient for requests. Its timeout is kept
// if set; httpClient itself is not modified.
func WithHTTPClient(httpClient *nethttp.Client) Option {
	return func(c *Client) {
		custom := *httpClient
		if custom.Timeout == 0 {
			custom.Timeout = c.httpClient.HTTPClient.Timeout
		}

		c.httpClient.HTTPClient = &custom
	}
}

// NewClient creates a client rooted at baseURL. Retries are disabled: every
// failure is final for that call.
func NewClient(baseURL string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = noRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: retryClient,
		userAgent:  constants.UserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger != nil && client.debug {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

func noRetry(_ context.Context, _ *nethttp.Response, err error) (bool, error) {
	return false, err
}

// Get issues a GET for path with params appended in order.
func (c *Client) Get(ctx context.Context, path string, params fofa.Params) (*fofa.Response, error) {
	return c.Do(ctx, &fofa.Request{Path: path, Params: params})
}

// Do performs the request.
func (c *Client) Do(ctx context.Context, req *fofa.Request) (*fofa.Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Params) > 0 {
		fullURL += "?" + req.Params.Encode()
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, nethttp.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fofa.NewConfigurationError(fmt.Sprintf("invalid API URL %q: %v", c.baseURL, err))
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	c.logDebug("HTTP Request", map[string]interface{}{
		"method": nethttp.MethodGet,
		"path":   req.Path,
		"params": req.Params.Redacted().Encode(),
	})

	started := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportError(err)
	}

	c.logDebug("HTTP Response", map[string]interface{}{
		"status":   resp.StatusCode,
		"bytes":    len(body),
		"duration": time.Since(started).String(),
	})

	return Translate(resp.StatusCode, body)
}

// Translate maps a status code and body onto a response or a *fofa.Error.
func Translate(statusCode int, body []byte) (*fofa.Response, error) {
	var payload map[string]interface{}

	decodeErr := json.Unmarshal(body, &payload)

	if statusCode < nethttp.StatusOK || statusCode >= nethttp.StatusMultipleChoices {
		if decodeErr != nil {
			return nil, fofa.NewProtocolError(statusCode, string(body), decodeErr)
		}

		message := errorMessage(body)
		if message == "" {
			message = fmt.Sprintf("HTTP %d: %s", statusCode, nethttp.StatusText(statusCode))
		}

		return nil, fofa.NewApplicationError(statusCode, message)
	}

	if decodeErr != nil {
		return nil, fofa.NewProtocolError(statusCode, string(body), decodeErr)
	}

	var errBody fofa.ErrorBody

	err := json.Unmarshal(body, &errBody)
	if err == nil && bool(errBody.Error) {
		return nil, fofa.NewApplicationError(statusCode, string(errBody.ErrMsg))
	}

	return &fofa.Response{
		StatusCode: statusCode,
		Body:       body,
		Payload:    payload,
	}, nil
}

func errorMessage(body []byte) string {
	var errBody fofa.ErrorBody

	err := json.Unmarshal(body, &errBody)
	if err != nil {
		return ""
	}

	return string(errBody.ErrMsg)
}

func (c *Client) transportError(err error) *fofa.Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fofa.NewTransportError(
			fmt.Sprintf("request timed out after %s", c.httpClient.HTTPClient.Timeout), scrub(err))
	}

	return fofa.NewTransportError("request failed", scrub(err))
}

func (c *Client) logDebug(msg string, fields map[string]interface{}) {
	if c.logger != nil && c.debug {
		c.logger.Debug(msg, fields)
	}
}

// scrub masks the key parameter in URL errors.
func scrub(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &url.Error{Op: urlErr.Op, URL: redactURL(urlErr.URL), Err: urlErr.Err}
	}

	return err
}

func redactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	if parsed.RawQuery == "" {
		return raw
	}

	query := parsed.Query()
	if query.Has(fofa.ParamKey) {
		query.Set(fofa.ParamKey, constants.MaskedValue)
	}

	parsed.RawQuery = query.Encode()

	return parsed.String()
}
