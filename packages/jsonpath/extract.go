package jsonpath

import (
	"errors"
	"fmt"
)

// ErrPathNotFound is matched by errors returned from Lookup.
var ErrPathNotFound = errors.New("path not found")

// NotFoundError describes where a lookup stopped.
type NotFoundError struct {
	Path    string
	Segment string
	// Depth is the number of segments that resolved before the miss.
	Depth int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no value found at %q (missing segment %q)", e.Path, e.Segment)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrPathNotFound
}

// Extract returns the value at the encoded path. The empty path returns value
// itself. Lookup through a null, a missing member, an out-of-range or
// non-canonical index, or a scalar reports false. A null leaf at the end of
// the path is a found value.
func Extract(value any, encoded string) (any, bool) {
	v, err := Lookup(value, encoded)
	return v, err == nil
}

// Lookup is Extract reporting a miss as a *NotFoundError.
func Lookup(value any, encoded string) (any, error) {
	current := value
	for depth, raw := range Split(encoded) {
		next, _, ok := step(current, raw)
		if !ok {
			return nil, &NotFoundError{Path: encoded, Segment: raw, Depth: depth}
		}
		current = next
	}
	return current, nil
}

// Get applies a typed Path. Key segments only match objects and Index
// segments only match arrays.
func Get(value any, path Path) (any, bool) {
	current := value
	for _, seg := range path {
		switch c := current.(type) {
		case map[string]any:
			if seg.IsIndex() {
				return nil, false
			}
			v, ok := c[seg.Key()]
			if !ok {
				return nil, false
			}
			current = v
		case []any:
			if !seg.IsIndex() || seg.Index() >= len(c) {
				return nil, false
			}
			current = c[seg.Index()]
		default:
			return nil, false
		}
	}
	return current, true
}

func step(current any, raw string) (any, Segment, bool) {
	switch c := current.(type) {
	case map[string]any:
		v, ok := c[raw]
		return v, Key(raw), ok
	case []any:
		i, ok := parseIndex(raw)
		if !ok || i >= len(c) {
			return nil, Segment{}, false
		}
		return c[i], Index(i), true
	default:
		return nil, Segment{}, false
	}
}
