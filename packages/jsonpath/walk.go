package jsonpath

import (
	"encoding/json"
	"iter"
	"slices"

	"github.com/tidwall/gjson"
)

// Kind classifies a JSON node.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// IsContainer reports whether nodes of this kind have children.
func (k Kind) IsContainer() bool {
	return k == KindArray || k == KindObject
}

// Node is one element yielded by a walk.
type Node struct {
	Path Path
	Kind Kind
	// Value is set for leaves only.
	Value any
	// Len is the number of children of a container.
	Len int
}

func (n Node) IsLeaf() bool {
	return !n.Kind.IsContainer()
}

func (n Node) Depth() int {
	return len(n.Path)
}

// KindOf classifies a decoded JSON value.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case float64, float32, int, int64, json.Number:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		return KindString
	}
}

// Walk yields every node of value in pre-order, starting with value itself at
// the root path. Array elements are visited in order; object members in
// sorted key order, since decoded maps carry no member order.
func Walk(value any) iter.Seq[Node] {
	return WalkFrom(nil, value)
}

// WalkFrom is Walk with every yielded path prefixed by prefix.
func WalkFrom(prefix Path, value any) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		walkValue(prefix, value, yield)
	}
}

func walkValue(path Path, value any, yield func(Node) bool) bool {
	switch v := value.(type) {
	case []any:
		if !yield(Node{Path: path, Kind: KindArray, Len: len(v)}) {
			return false
		}
		for i, child := range v {
			if !walkValue(path.Append(Index(i)), child, yield) {
				return false
			}
		}
		return true
	case map[string]any:
		if !yield(Node{Path: path, Kind: KindObject, Len: len(v)}) {
			return false
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if !walkValue(path.Append(Key(k)), v[k], yield) {
				return false
			}
		}
		return true
	default:
		return yield(Node{Path: path, Kind: KindOf(value), Value: value})
	}
}

// WalkDocument walks raw JSON text, preserving the member order of the
// document. Invalid JSON yields nothing. Of duplicate keys only the last
// member is yielded, at its own position, since that is the one a decoded
// value keeps.
func WalkDocument(raw string) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if !gjson.Valid(raw) {
			return
		}
		walkResult(nil, gjson.Parse(raw), yield)
	}
}

func walkResult(path Path, r gjson.Result, yield func(Node) bool) bool {
	switch {
	case r.IsArray():
		children := r.Array()
		if !yield(Node{Path: path, Kind: KindArray, Len: len(children)}) {
			return false
		}
		for i, child := range children {
			if !walkResult(path.Append(Index(i)), child, yield) {
				return false
			}
		}
		return true
	case r.IsObject():
		type member struct {
			key   string
			value gjson.Result
		}
		var members []member
		last := make(map[string]int)
		r.ForEach(func(k, v gjson.Result) bool {
			last[k.String()] = len(members)
			members = append(members, member{key: k.String(), value: v})
			return true
		})
		if len(last) < len(members) {
			kept := members[:0]
			for i, m := range members {
				if last[m.key] == i {
					kept = append(kept, m)
				}
			}
			members = kept
		}
		if !yield(Node{Path: path, Kind: KindObject, Len: len(members)}) {
			return false
		}
		for _, m := range members {
			if !walkResult(path.Append(Key(m.key)), m.value, yield) {
				return false
			}
		}
		return true
	default:
		return yield(Node{Path: path, Kind: resultKind(r), Value: r.Value()})
	}
}

func resultKind(r gjson.Result) Kind {
	switch r.Type {
	case gjson.Null:
		return KindNull
	case gjson.True, gjson.False:
		return KindBool
	case gjson.Number:
		return KindNumber
	default:
		return KindString
	}
}

// Leaves yields only the leaf nodes of seq.
func Leaves(seq iter.Seq[Node]) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for n := range seq {
			if n.IsLeaf() && !yield(n) {
				return
			}
		}
	}
}
