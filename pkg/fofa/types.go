package fofa

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Credentials identify the account making a request.
type Credentials struct {
	Email string `json:"email" yaml:"email"`
	Key   string `json:"key"   yaml:"key"`
}

// Valid reports whether both halves are present.
func (c Credentials) Valid() bool {
	return c.Email != "" && c.Key != ""
}

// Request is a single call to the service.
type Request struct {
	Path   string
	Params Params
}

// Response is a decoded success body. Payload is the body as decoded, unfiltered.
type Response struct {
	StatusCode int
	Body       []byte
	Payload    map[string]interface{}
}

// Decode unmarshals the raw body into v. A field whose JSON type does not
// match is left zero; the body itself stays available unmodified.
func (r *Response) Decode(v interface{}) error {
	err := json.Unmarshal(r.Body, v)

	var typeErr *json.UnmarshalTypeError
	if err != nil && !errors.As(err, &typeErr) {
		return NewProtocolError(r.StatusCode, string(r.Body), err)
	}

	return nil
}

// ErrorBody is the part of a body that signals an application error.
type ErrorBody struct {
	Error  Flag `json:"error"`
	ErrMsg Text `json:"errmsg"`
}

// Text decodes a JSON string as-is and any other value as its JSON text.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	var value string

	err := json.Unmarshal(data, &value)
	if err == nil {
		*t = Text(value)

		return nil
	}

	*t = Text(data)

	return nil
}

// Int decodes a JSON number or a string holding one, such as "12" or
// "AS13335". Anything else decodes as zero.
type Int int

// UnmarshalJSON implements json.Unmarshaler.
func (i *Int) UnmarshalJSON(data []byte) error {
	var value interface{}

	err := json.Unmarshal(data, &value)
	if err != nil {
		return err
	}

	switch v := value.(type) {
	case float64:
		*i = Int(v)
	case string:
		*i = Int(parseInt(v))
	default:
		*i = 0
	}

	return nil
}

func parseInt(value string) int {
	value = strings.TrimSpace(value)
	if len(value) > 2 && strings.EqualFold(value[:2], "AS") {
		value = value[2:]
	}

	n, err := strconv.Atoi(value)
	if err == nil {
		return n
	}

	f, err := strconv.ParseFloat(value, 64)
	if err == nil {
		return int(f)
	}

	return 0
}

// Flag decodes any JSON value by truthiness: false, 0, "", null, [] and {} are false.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	var value interface{}

	err := json.Unmarshal(data, &value)
	if err != nil {
		return err
	}

	*f = Flag(truthy(value))

	return nil
}

func truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	case []interface{}:
		return len(v) > 0
	case map[string]interface{}:
		return len(v) > 0
	default:
		return true
	}
}

// Envelope carries the raw body of a decoded response.
type Envelope struct {
	Raw []byte `json:"-" yaml:"-"`
}

// SearchResponse is returned by /search/all and /search/next.
type SearchResponse struct {
	Envelope `yaml:",inline"`

	Mode    string        `json:"mode"           yaml:"mode"`
	Query   string        `json:"query"          yaml:"query"`
	Page    Int           `json:"page"           yaml:"page"`
	Size    Int           `json:"size"           yaml:"size"`
	Total   Int           `json:"total"          yaml:"total"`
	Next    string        `json:"next,omitempty" yaml:"next,omitempty"`
	Results []interface{} `json:"results"        yaml:"results"`
}

// Rows normalises Results into string records. A result is either a list of
// field values or, when a single field is requested, a bare value.
func (r *SearchResponse) Rows() [][]string {
	rows := make([][]string, 0, len(r.Results))

	for _, result := range r.Results {
		switch value := result.(type) {
		case []interface{}:
			row := make([]string, 0, len(value))
			for _, cell := range value {
				row = append(row, formatCell(cell))
			}

			rows = append(rows, row)
		default:
			rows = append(rows, []string{formatCell(value)})
		}
	}

	return rows
}

func formatCell(cell interface{}) string {
	switch value := cell.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}

		return fmt.Sprintf("%g", value)
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}

		return string(encoded)
	}
}

// StatsResponse is returned by /search/stats.
type StatsResponse struct {
	Envelope `yaml:",inline"`

	Query string                     `json:"query"          yaml:"query"`
	Size  Int                        `json:"size,omitempty" yaml:"size,omitempty"`
	Stat  map[string]json.RawMessage `json:"stat"           yaml:"-"`
}

// Distribution returns the value counts for field. A missing or non-object
// entry yields an empty map.
func (r *StatsResponse) Distribution(field string) map[string]int {
	dist := map[string]int{}

	raw, ok := r.Stat[field]
	if !ok {
		return dist
	}

	var counts map[string]float64

	err := json.Unmarshal(raw, &counts)
	if err != nil {
		return dist
	}

	for value, count := range counts {
		dist[value] = int(count)
	}

	return dist
}

// HostResponse is returned by /host/{host}.
type HostResponse struct {
	Envelope `yaml:",inline"`

	Host        string   `json:"host"         yaml:"host"`
	IP          string   `json:"ip"           yaml:"ip"`
	ASN         Int      `json:"asn"          yaml:"asn"`
	Org         string   `json:"org"          yaml:"org"`
	CountryName string   `json:"country_name" yaml:"country_name"`
	CountryCode string   `json:"country_code" yaml:"country_code"`
	Ports       []Int    `json:"port"         yaml:"port"`
	Protocols   []string `json:"protocol"     yaml:"protocol"`
	Categories  []string `json:"category"     yaml:"category"`
	Products    []string `json:"product"      yaml:"product"`
	UpdateTime  string   `json:"update_time"  yaml:"update_time"`
}

// HostsResponse is returned by /search/hosts.
type HostsResponse struct {
	Envelope `yaml:",inline"`

	Results []interface{} `json:"results" yaml:"results"`
}

// AccountInfo is returned by /info/my.
type AccountInfo struct {
	Envelope `yaml:",inline"`

	Email          string `json:"email"            yaml:"email"`
	Username       string `json:"username"         yaml:"username"`
	Category       string `json:"category"         yaml:"category"`
	FCoin          Int    `json:"fcoin"            yaml:"fcoin"`
	FofaPoint      Int    `json:"fofa_point"       yaml:"fofa_point"`
	IsVIP          bool   `json:"isvip"            yaml:"isvip"`
	VIPLevel       Int    `json:"vip_level"        yaml:"vip_level"`
	RemainAPIQuery Int    `json:"remain_api_query" yaml:"remain_api_query"`
	RemainAPIData  Int    `json:"remain_api_data"  yaml:"remain_api_data"`
}

// ProductsResponse is returned by /info/products.
type ProductsResponse struct {
	Envelope `yaml:",inline"`

	Products []interface{} `json:"products" yaml:"products"`
}

// AppsResponse is returned by /info/apps.
type AppsResponse struct {
	Envelope `yaml:",inline"`

	Apps []interface{} `json:"apps" yaml:"apps"`
}
