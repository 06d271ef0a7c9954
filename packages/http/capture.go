package http

import (
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Capture is the immutable record of one HTTP call.
type Capture struct {
	Status      int               `json:"status"`
	StatusText  string            `json:"statusText"`
	Headers     map[string]string `json:"headers"`
	RawText     string            `json:"rawText"`
	ParsedJSON  any               `json:"parsedJson"`
	IsJSONValid bool              `json:"isJsonValid"`
	Duration    time.Duration     `json:"duration"`
	// Truncated is set when the body exceeded the client's size limit and
	// RawText holds only the first part of it.
	Truncated bool `json:"truncated,omitempty"`
}

// Parsed is the result of ParseBody.
type Parsed struct {
	// Value is the decoded JSON value when IsJSONValid, otherwise the raw text.
	// The raw-text fallback is for display only.
	Value       any
	IsJSONValid bool
}

// ParseBody strictly decodes raw as JSON. Any JSON type is accepted, including
// scalars and null. Anything else falls back to the raw string.
func ParseBody(raw string) Parsed {
	if !gjson.Valid(raw) {
		return Parsed{Value: raw, IsJSONValid: false}
	}
	return Parsed{Value: gjson.Parse(raw).Value(), IsJSONValid: true}
}

func (c *Capture) Header(key string) string {
	for k, v := range c.Headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

func (c *Capture) ContentType() string {
	return c.Header("Content-Type")
}

func (c *Capture) IsSuccess() bool {
	return c.Status >= 200 && c.Status < 300
}

func (c *Capture) DurationMs() int64 {
	return c.Duration.Milliseconds()
}
