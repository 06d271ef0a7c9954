// Package jsonpath models locations inside a decoded JSON value.
//
// A Path is an ordered list of segments, each either an object key or an
// array index. Paths are flattened to a dotted string only at the storage
// boundary; that encoding is lossy:
//   - an array index and a numeric object key encode identically
//   - keys containing "." cannot be told apart from nested keys
//
// Resolve recovers a typed Path from its encoding by consulting the value it
// is applied to. Extract applies an encoded path directly and reports a miss
// instead of failing. Walk and WalkDocument enumerate every node of a value
// together with its Path, which is what tree renderers consume.
package jsonpath
