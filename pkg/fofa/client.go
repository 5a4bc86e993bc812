package fofa

import (
	"context"
	"time"
)

// DefaultBaseURL is the public FOFA API root.
const DefaultBaseURL = "https://fofa.info/api/v1"

// SearchOptions are the optional parameters of a search.
type SearchOptions struct {
	Fields []string
	Full   bool
}

// SearchClient covers the query endpoints.
type SearchClient interface {
	// Search runs an offset-paginated query.
	Search(ctx context.Context, query string, page, size int, opts *SearchOptions) (*SearchResponse, error)
	// Next fetches the page after cursor. The cursor comes from a previous
	// response and must be passed back unchanged.
	Next(ctx context.Context, cursor string, size int, query string) (*SearchResponse, error)
	// Count returns the total reported by a size=1 search.
	Count(ctx context.Context, query string) (int, error)
	// Stats aggregates query results by field.
	Stats(ctx context.Context, query, field string) (*StatsResponse, error)
}

// HostClient covers the host endpoints.
type HostClient interface {
	Host(ctx context.Context, host string) (*HostResponse, error)
	Hosts(ctx context.Context, hosts []string) (*HostsResponse, error)
}

// InfoClient covers the account and catalog endpoints.
type InfoClient interface {
	AccountInfo(ctx context.Context) (*AccountInfo, error)
	Products(ctx context.Context) (*ProductsResponse, error)
	Apps(ctx context.Context) (*AppsResponse, error)
}

// Client is the full FOFA API surface.
type Client interface {
	SearchClient
	HostClient
	InfoClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
type Config struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string

	Credentials Credentials

	// Timeout bounds each call. Zero means the 30 second default.
	Timeout time.Duration

	UserAgent string
	Logger    Logger
	Debug     bool
}
