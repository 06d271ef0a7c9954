package jsonpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment(t *testing.T) {
	k := Key("price")
	assert.False(t, k.IsIndex())
	assert.Equal(t, "price", k.Key())
	assert.Equal(t, -1, k.Index())
	assert.Equal(t, "price", k.String())

	i := Index(3)
	assert.True(t, i.IsIndex())
	assert.Equal(t, 3, i.Index())
	assert.Equal(t, "3", i.String())

	assert.Equal(t, 0, Index(-4).Index())
}

func TestPath_String(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{"root", nil, ""},
		{"single key", Path{Key("output")}, "output"},
		{"nested", Path{Key("output"), Key("price")}, "output.price"},
		{"index", Path{Key("a"), Index(1)}, "a.1"},
		{"numeric key", Path{Key("a"), Key("1")}, "a.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())
		})
	}
}

func TestPath_AppendDoesNotAlias(t *testing.T) {
	base := make(Path, 1, 8)
	base[0] = Key("a")

	left := base.Append(Key("b"))
	right := base.Append(Key("c"))

	assert.Equal(t, "a.b", left.String())
	assert.Equal(t, "a.c", right.String())
	assert.Len(t, base, 1)
}

func TestPath_Equal(t *testing.T) {
	assert.True(t, Path{Key("a"), Index(0)}.Equal(Path{Key("a"), Index(0)}))
	assert.False(t, Path{Key("a"), Index(0)}.Equal(Path{Key("a"), Key("0")}))
	assert.False(t, Path{Key("a")}.Equal(Path{Key("a"), Key("b")}))
	assert.True(t, Path(nil).Equal(Path{}))
}

func TestPath_Last(t *testing.T) {
	_, ok := Path(nil).Last()
	assert.False(t, ok)

	seg, ok := Path{Key("a"), Index(2)}.Last()
	assert.True(t, ok)
	assert.Equal(t, Index(2), seg)
}

func TestSplit(t *testing.T) {
	assert.Nil(t, Split(""))
	assert.Equal(t, []string{"output", "price"}, Split("output.price"))
	assert.Equal(t, []string{"a", "", "b"}, Split("a..b"))
}

func TestResolve(t *testing.T) {
	value := map[string]any{
		"a":    []any{float64(10), float64(20)},
		"0":    "numeric key",
		"list": []any{map[string]any{"1": "x"}},
	}

	tests := []struct {
		name    string
		encoded string
		want    Path
		ok      bool
	}{
		{"root", "", nil, true},
		{"array index", "a.1", Path{Key("a"), Index(1)}, true},
		{"numeric key on object", "0", Path{Key("0")}, true},
		{"mixed", "list.0.1", Path{Key("list"), Index(0), Key("1")}, true},
		{"out of range", "a.5", nil, false},
		{"missing", "b", nil, false},
		{"non canonical index", "a.01", nil, false},
		{"through scalar", "a.0.x", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(value, tt.encoded)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v", got)
			}
		})
	}
}

func TestParseIndex(t *testing.T) {
	valid := map[string]int{"0": 0, "7": 7, "42": 42}
	for raw, want := range valid {
		got, ok := parseIndex(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"", "-1", "01", "+1", "1.0", "x", "1e2", "99999999999999999999999"} {
		_, ok := parseIndex(raw)
		assert.False(t, ok, raw)
	}
}
