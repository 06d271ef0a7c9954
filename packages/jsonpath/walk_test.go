package jsonpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func paths(seq func(func(Node) bool)) []string {
	var out []string
	for n := range seq {
		out = append(out, n.Path.String())
	}
	return out
}

func TestWalk_PreOrder(t *testing.T) {
	value := decode(t, `{"b":[1,{"c":true}],"a":null}`)

	var nodes []Node
	for n := range Walk(value) {
		nodes = append(nodes, n)
	}

	want := []struct {
		path string
		kind Kind
	}{
		{"", KindObject},
		{"a", KindNull},
		{"b", KindArray},
		{"b.0", KindNumber},
		{"b.1", KindObject},
		{"b.1.c", KindBool},
	}

	assert.Len(t, nodes, len(want))
	for i, w := range want {
		assert.Equal(t, w.path, nodes[i].Path.String(), "node %d", i)
		assert.Equal(t, w.kind, nodes[i].Kind, "node %d", i)
	}

	assert.Equal(t, 2, nodes[0].Len)
	assert.Equal(t, 2, nodes[2].Len)
	assert.True(t, nodes[2].Path[0] == Key("b"))
	assert.True(t, nodes[3].Path[1].IsIndex())
	assert.Equal(t, float64(1), nodes[3].Value)
	assert.Equal(t, 3, nodes[5].Depth())
}

func TestWalk_ArrayIndexScenario(t *testing.T) {
	value := decode(t, `{"a":[10,20,30]}`)

	var selected Node
	for n := range Leaves(Walk(value)) {
		if n.Value == float64(20) {
			selected = n
		}
	}

	assert.Equal(t, "a.1", selected.Path.String())
	got, ok := Extract(value, selected.Path.String())
	assert.True(t, ok)
	assert.Equal(t, float64(20), got)
}

func TestWalk_ScalarRoot(t *testing.T) {
	var nodes []Node
	for n := range Walk("hello") {
		nodes = append(nodes, n)
	}
	assert.Len(t, nodes, 1)
	assert.True(t, nodes[0].IsLeaf())
	assert.Equal(t, "", nodes[0].Path.String())
	assert.Equal(t, "hello", nodes[0].Value)
}

func TestWalk_StopsEarly(t *testing.T) {
	value := decode(t, `{"a":[1,2,3,4,5],"b":{"c":1}}`)

	count := 0
	for range Walk(value) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestWalkFrom_Prefix(t *testing.T) {
	got := paths(WalkFrom(Path{Key("root")}, []any{"x"}))
	assert.Equal(t, []string{"root", "root.0"}, got)
}

func TestWalkDocument_PreservesOrder(t *testing.T) {
	got := paths(WalkDocument(`{"z":1,"a":{"y":2,"b":3},"m":[4]}`))
	assert.Equal(t, []string{"", "z", "a", "a.y", "a.b", "m", "m.0"}, got)
}

func TestWalkDocument_LeafValues(t *testing.T) {
	var leaves []Node
	for n := range Leaves(WalkDocument(`{"price":225,"name":"btc","ok":true,"none":null}`)) {
		leaves = append(leaves, n)
	}

	assert.Len(t, leaves, 4)
	assert.Equal(t, KindNumber, leaves[0].Kind)
	assert.Equal(t, float64(225), leaves[0].Value)
	assert.Equal(t, KindString, leaves[1].Kind)
	assert.Equal(t, KindBool, leaves[2].Kind)
	assert.Equal(t, KindNull, leaves[3].Kind)
	assert.Nil(t, leaves[3].Value)
}

func TestWalkDocument_MatchesDecodedExtraction(t *testing.T) {
	raw := `{"output":{"price":225,"history":[1,2,{"v":"x"}]}}`
	value := decode(t, raw)

	for n := range Leaves(WalkDocument(raw)) {
		got, ok := Extract(value, n.Path.String())
		assert.True(t, ok, n.Path.String())
		assert.Equal(t, n.Value, got, n.Path.String())
	}
}

func TestWalkDocument_DuplicateKeys(t *testing.T) {
	raw := `{"p":1,"q":{"r":true},"p":2,"o":{"k":"a","k":"b"}}`
	assert.Equal(t, []string{"", "q", "q.r", "p", "o", "o.k"}, paths(WalkDocument(raw)))

	var root, inner Node
	for n := range WalkDocument(raw) {
		switch n.Path.String() {
		case "":
			root = n
		case "o":
			inner = n
		}
	}
	assert.Equal(t, 3, root.Len)
	assert.Equal(t, 1, inner.Len)

	value := decode(t, raw)
	for n := range Leaves(WalkDocument(raw)) {
		got, ok := Extract(value, n.Path.String())
		assert.True(t, ok, n.Path.String())
		assert.Equal(t, n.Value, got, n.Path.String())
	}
}

func TestWalkDocument_Invalid(t *testing.T) {
	assert.Empty(t, paths(WalkDocument(`not json`)))
	assert.Empty(t, paths(WalkDocument(``)))
}

func TestKind(t *testing.T) {
	assert.Equal(t, KindNull, KindOf(nil))
	assert.Equal(t, KindBool, KindOf(true))
	assert.Equal(t, KindNumber, KindOf(1.5))
	assert.Equal(t, KindString, KindOf("s"))
	assert.Equal(t, KindArray, KindOf([]any{}))
	assert.Equal(t, KindObject, KindOf(map[string]any{}))

	assert.True(t, KindArray.IsContainer())
	assert.False(t, KindNull.IsContainer())
	assert.Equal(t, "object", KindObject.String())
}
