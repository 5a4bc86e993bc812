package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600

	// ExportFilePerm is the permission for JSON and CSV dumps.
	ExportFilePerm = 0644
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout bounds every call to the service.
	DefaultHTTPTimeout = 30 * time.Second

	// NATSConnectTimeout bounds the publisher handshake.
	NATSConnectTimeout = 5 * time.Second
)

// API paths, relative to the base URL.
const (
	PathSearch   = "/search/all"
	PathStats    = "/search/stats"
	PathHosts    = "/search/hosts"
	PathNext     = "/search/next"
	PathHost     = "/host/"
	PathInfo     = "/info/my"
	PathProducts = "/info/products"
	PathApps     = "/info/apps"
)

// Pagination and display limits.
const (
	// DefaultPageSize is the default number of results requested.
	DefaultPageSize = 100

	// DefaultPage is the first page of an offset search.
	DefaultPage = 1

	// DefaultDisplayLimit is how many rows a command prints.
	DefaultDisplayLimit = 10

	// DefaultStatsLimit is how many distribution rows stats prints.
	DefaultStatsLimit = 20

	// DefaultFingerSearchSize is the page size used by finger --search.
	DefaultFingerSearchSize = 10

	// CountPageSize is the page size used to derive a count.
	CountPageSize = 1
)

// Defaults for flags and configuration.
const (
	DefaultStatsField = "protocol"
	DefaultNATSURL    = "nats://127.0.0.1:4222"
	DefaultSubject    = "fofa.results"
	UserAgent         = "fofa-cli"
	ConfigDirName     = ".fofa"
	ConfigFileName    = "config"
	ConfigFileType    = "yml"
	EnvPrefix         = "FOFA"
)

// Format constants.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// Display constants.
const (
	// JSONIndent is the indentation used for JSON output.
	JSONIndent = "  "

	// MaskedValue replaces secrets in output.
	MaskedValue = "***"

	// VisibleSecretChars is how many leading characters of a secret are shown.
	VisibleSecretChars = 4

	// MaxCellWidth truncates long table cells.
	MaxCellWidth = 80
)
