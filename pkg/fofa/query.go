package fofa

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// MaxPageSize is the largest page size the service accepts.
const MaxPageSize = 10000

// Wire parameter names.
const (
	ParamQuery  = "qbase64"
	ParamPage   = "page"
	ParamSize   = "size"
	ParamFields = "fields"
	ParamField  = "field"
	ParamFull   = "full"
	ParamHosts  = "hosts"
	ParamCursor = "last_id"
	ParamEmail  = "email"
	ParamKey    = "key"
)

// Param is a single wire parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered parameter list. Order is kept on the wire.
type Params []Param

// With returns a copy of p with key=value appended.
func (p Params) With(key, value string) Params {
	out := make(Params, 0, len(p)+1)
	out = append(out, p...)

	return append(out, Param{Key: key, Value: value})
}

// Merge returns a copy of p followed by extra.
func (p Params) Merge(extra Params) Params {
	out := make(Params, 0, len(p)+len(extra))
	out = append(out, p...)

	return append(out, extra...)
}

// WithCredentials appends the authentication parameters last.
func (p Params) WithCredentials(creds Credentials) Params {
	return p.With(ParamEmail, creds.Email).With(ParamKey, creds.Key)
}

// Get returns the first value stored under key.
func (p Params) Get(key string) (string, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}

	return "", false
}

// Keys returns the parameter names in order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for _, param := range p {
		keys = append(keys, param.Key)
	}

	return keys
}

// Encode renders p as a query string. Values are percent-escaped, keys are not.
func (p Params) Encode() string {
	var builder strings.Builder

	for i, param := range p {
		if i > 0 {
			builder.WriteByte('&')
		}

		builder.WriteString(param.Key)
		builder.WriteByte('=')
		builder.WriteString(EscapeValue(param.Value))
	}

	return builder.String()
}

// Redacted returns a copy of p with the secret masked, for logging.
func (p Params) Redacted() Params {
	out := make(Params, len(p))
	for i, param := range p {
		if param.Key == ParamKey {
			param.Value = "***"
		}

		out[i] = param
	}

	return out
}

// EscapeValue percent-escapes a parameter value. Spaces become %20.
func EscapeValue(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}

// EncodeQuery returns the base64 form of the UTF-8 bytes of query.
func EncodeQuery(query string) string {
	return base64.StdEncoding.EncodeToString([]byte(query))
}

// DecodeQuery reverses EncodeQuery.
func DecodeQuery(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode query: %w", err)
	}

	return string(raw), nil
}

// ClampSize caps size at MaxPageSize.
func ClampSize(size int) int {
	return min(size, MaxPageSize)
}

// SearchParams builds the parameter set for an offset-paginated search.
func SearchParams(query string, page, size int, extra Params) Params {
	params := Params{
		{Key: ParamQuery, Value: EncodeQuery(query)},
		{Key: ParamPage, Value: strconv.Itoa(page)},
		{Key: ParamSize, Value: strconv.Itoa(ClampSize(size))},
	}

	return params.Merge(extra)
}

// StatsParams builds the parameter set for a field aggregation.
func StatsParams(query, field string) Params {
	return Params{
		{Key: ParamQuery, Value: EncodeQuery(query)},
		{Key: ParamField, Value: field},
	}
}

// NextParams builds the parameter set for cursor pagination. query may be empty.
func NextParams(cursor string, size int, query string) Params {
	var params Params
	if query != "" {
		params = params.With(ParamQuery, EncodeQuery(query))
	}

	return params.
		With(ParamCursor, cursor).
		With(ParamSize, strconv.Itoa(ClampSize(size)))
}

// JoinHosts joins host identifiers for a batch lookup. Values pass through untouched.
func JoinHosts(hosts []string) string {
	return strings.Join(hosts, ",")
}
