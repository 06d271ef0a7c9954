package request

import (
	"fmt"
	"net/http"
	"strings"
)

// Method is one of the HTTP verbs a request may use.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// Methods lists the accepted verbs in display order.
var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete}

// IsValid reports whether m is one of the accepted verbs.
func (m Method) IsValid() bool {
	for _, v := range Methods {
		if m == v {
			return true
		}
	}
	return false
}

// AllowsBody reports whether a body is sent for this verb.
func (m Method) AllowsBody() bool {
	return m == MethodPost || m == MethodPut || m == MethodPatch
}

// Field names a settable scalar field of a Config.
type Field string

const (
	FieldMethod  Field = "method"
	FieldURL     Field = "url"
	FieldBody    Field = "body"
	FieldHeaders Field = "headers"
)

// Header is a single key/value pair as entered by the user.
type Header struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// IsComplete reports whether both key and value are present.
func (h Header) IsComplete() bool {
	return h.Key != "" && h.Value != ""
}

// Config describes an outbound request and the path selected in its response.
type Config struct {
	Method       Method   `json:"method" yaml:"method"`
	URL          string   `json:"url" yaml:"url"`
	Body         string   `json:"body,omitempty" yaml:"body,omitempty"`
	Headers      []Header `json:"headers" yaml:"headers"`
	SelectedPath string   `json:"selectedPath,omitempty" yaml:"selectedPath,omitempty"`
}

// New returns a Config with the form defaults: GET and one empty header row.
func New() *Config {
	return &Config{
		Method:  MethodGet,
		Headers: []Header{{}},
	}
}

// SetField assigns a scalar field. Method values are upper-cased.
func (c *Config) SetField(field Field, value string) error {
	switch field {
	case FieldMethod:
		c.Method = Method(strings.ToUpper(strings.TrimSpace(value)))
	case FieldURL:
		c.URL = value
	case FieldBody:
		c.Body = value
	default:
		return fmt.Errorf("unknown field: %s", field)
	}
	return nil
}

// AddHeader appends a header row, which may be blank.
func (c *Config) AddHeader(key, value string) {
	c.Headers = append(c.Headers, Header{Key: key, Value: value})
}

// SetHeader replaces the header row at index i.
func (c *Config) SetHeader(i int, key, value string) error {
	if i < 0 || i >= len(c.Headers) {
		return fmt.Errorf("header index %d out of range", i)
	}
	c.Headers[i] = Header{Key: key, Value: value}
	return nil
}

// RemoveHeader deletes the header row at index i.
func (c *Config) RemoveHeader(i int) error {
	if i < 0 || i >= len(c.Headers) {
		return fmt.Errorf("header index %d out of range", i)
	}
	c.Headers = append(c.Headers[:i:i], c.Headers[i+1:]...)
	return nil
}

// SetSelectedPath records the canonical encoding of the chosen response path.
func (c *Config) SetSelectedPath(path string) {
	c.SelectedPath = path
}

// CompleteHeaders returns, in order, the rows with both key and value set.
func (c *Config) CompleteHeaders() []Header {
	var out []Header
	for _, h := range c.Headers {
		if h.IsComplete() {
			out = append(out, h)
		}
	}
	return out
}

// OutgoingHeaders builds the header set actually sent. Incomplete rows are
// dropped; a repeated key keeps the last value, compared case-insensitively.
func (c *Config) OutgoingHeaders() http.Header {
	out := make(http.Header)
	for _, h := range c.CompleteHeaders() {
		out.Set(h.Key, h.Value)
	}
	return out
}

// SendsBody reports whether the body is attached to the outgoing request.
func (c *Config) SendsBody() bool {
	return c.Method.AllowsBody() && c.Body != ""
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	if c.Headers != nil {
		clone.Headers = make([]Header, len(c.Headers))
		copy(clone.Headers, c.Headers)
	}
	return &clone
}
