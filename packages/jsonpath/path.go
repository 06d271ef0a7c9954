package jsonpath

import (
	"strconv"
	"strings"
)

// Separator joins segments in the encoded form of a Path.
const Separator = "."

// Segment is one step of a Path: an object key or an array index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Key returns a segment selecting an object member.
func Key(k string) Segment {
	return Segment{key: k}
}

// Index returns a segment selecting an array element. Negative indices are
// clamped to zero.
func Index(i int) Segment {
	if i < 0 {
		i = 0
	}
	return Segment{index: i, isIndex: true}
}

func (s Segment) IsIndex() bool {
	return s.isIndex
}

// Key returns the member name, or "" for index segments.
func (s Segment) Key() string {
	return s.key
}

// Index returns the element position, or -1 for key segments.
func (s Segment) Index() int {
	if !s.isIndex {
		return -1
	}
	return s.index
}

func (s Segment) String() string {
	if s.isIndex {
		return strconv.Itoa(s.index)
	}
	return s.key
}

// Path is an ordered sequence of segments from the root of a value.
type Path []Segment

// Append returns a new Path extended by segs. The receiver is never modified.
func (p Path) Append(segs ...Segment) Path {
	out := make(Path, 0, len(p)+len(segs))
	out = append(out, p...)
	return append(out, segs...)
}

// String returns the canonical dotted encoding.
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, Separator)
}

func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Last returns the final segment, or false for the root path.
func (p Path) Last() (Segment, bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return p[len(p)-1], true
}

// Split breaks an encoded path into its raw segments. The empty string is the
// root and yields no segments.
func Split(encoded string) []string {
	if encoded == "" {
		return nil
	}
	return strings.Split(encoded, Separator)
}

// Resolve decodes an encoded path against value. A segment becomes an Index
// when the container it is applied to is an array and a Key otherwise. It
// returns false if any segment does not exist in value.
func Resolve(value any, encoded string) (Path, bool) {
	var path Path
	current := value
	for _, raw := range Split(encoded) {
		next, seg, ok := step(current, raw)
		if !ok {
			return nil, false
		}
		path = append(path, seg)
		current = next
	}
	return path, true
}

// parseIndex accepts only canonical non-negative integers: "0", "12", but not
// "-1", "01" or "+1".
func parseIndex(raw string) (int, bool) {
	if raw == "" || (len(raw) > 1 && raw[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
