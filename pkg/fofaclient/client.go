// Package fofaclient provides the main entry point for creating FOFA API clients
package fofaclient

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/fofa-cli/internal/auth"
	"github.com/fivetwenty-io/fofa-cli/internal/client"
	"github.com/fivetwenty-io/fofa-cli/pkg/fofa"
)

// ErrConfigRequired is returned when New receives a nil config.
var ErrConfigRequired = errors.New("config is required")

// New creates a new FOFA API client.
func New(config *fofa.Config) (fofa.Client, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}

	normalized := *config
	if normalized.BaseURL != "" {
		normalized.BaseURL = NormalizeBaseURL(normalized.BaseURL)
	}

	c, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithCredentials creates a client for the public API with the given account.
func NewWithCredentials(email, key string) (fofa.Client, error) {
	return New(&fofa.Config{
		Credentials: fofa.Credentials{Email: email, Key: key},
	})
}

// NewFromEnv creates a client from FOFA_TOKEN, or FOFA_EMAIL and FOFA_API_KEY.
func NewFromEnv() (fofa.Client, error) {
	source, err := auth.NewEnvSource()
	if err != nil {
		return nil, err
	}

	creds, err := auth.Resolve(source)
	if err != nil {
		return nil, err
	}

	return New(&fofa.Config{Credentials: creds})
}

// NormalizeBaseURL trims trailing slashes and defaults the scheme to https.
func NormalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}
