package request

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Validation is the outcome of Config.Validate.
type Validation struct {
	Valid       bool
	FieldErrors map[Field]string
}

// Err returns a *ValidationError when the validation failed, nil otherwise.
func (v Validation) Err() error {
	if v.Valid {
		return nil
	}
	return &ValidationError{FieldErrors: v.FieldErrors}
}

// ValidationError carries per-field messages for a rejected Config.
type ValidationError struct {
	FieldErrors map[Field]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.FieldErrors))
	for f := range e.FieldErrors {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.FieldErrors[Field(f)]))
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// Validate checks the fields that gate sending the request. Incomplete header
// rows are not errors; they are dropped when the request is sent.
func (c *Config) Validate() Validation {
	errs := make(map[Field]string)

	if !c.Method.IsValid() {
		errs[FieldMethod] = fmt.Sprintf("method must be one of GET, POST, PUT, PATCH, DELETE (got %q)", string(c.Method))
	}

	if err := ValidateURL(c.URL); err != nil {
		errs[FieldURL] = err.Error()
	}

	return Validation{Valid: len(errs) == 0, FieldErrors: errs}
}

// ValidateURL checks that rawURL is an absolute URL. http and https URLs
// also need a host; other schemes pass and fail later at the transport.
func ValidateURL(rawURL string) error {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return fmt.Errorf("please enter a valid URL")
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("please enter a valid URL: %v", err)
	}
	if !u.IsAbs() {
		return fmt.Errorf("please enter a valid URL: missing scheme")
	}
	if isHTTPScheme(u.Scheme) && u.Host == "" {
		return fmt.Errorf("please enter a valid URL: missing host")
	}

	return nil
}

func isHTTPScheme(scheme string) bool {
	return strings.EqualFold(scheme, "http") || strings.EqualFold(scheme, "https")
}
