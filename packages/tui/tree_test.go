package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTree_DocumentOrder(t *testing.T) {
	tr := newTree(`{"z":{"b":1,"a":[true,null]},"y":"s"}`)

	var got []string
	for _, n := range tr.rows {
		got = append(got, n.Path.String())
	}
	assert.Equal(t, []string{"z", "z.b", "z.a", "z.a.0", "z.a.1", "y"}, got)
}

func TestNewTree_InvalidJSON(t *testing.T) {
	tr := newTree("nope")
	assert.Empty(t, tr.rows)
	_, ok := tr.current()
	assert.False(t, ok)
}

func TestTree_RowLabel(t *testing.T) {
	tr := newTree(`{"a":[1,"x",null],"o":{}}`)

	var labels []string
	for _, n := range tr.rows {
		labels = append(labels, tr.rowLabel(n))
	}
	assert.Equal(t, []string{
		"a [3]",
		`  [0]: 1`,
		`  [1]: "x"`,
		`  [2]: null`,
		"o {0}",
	}, labels)
}

func TestTree_Movement(t *testing.T) {
	tr := newTree(`{"a":{"b":1},"c":{"d":2}}`)

	tr.move(-5)
	assert.Equal(t, 0, tr.cursor)
	tr.move(100)
	assert.Equal(t, 3, tr.cursor)

	tr.cursor = 0
	tr.moveToLeaf(1)
	assert.Equal(t, 1, tr.cursor)
	tr.moveToLeaf(1)
	assert.Equal(t, 3, tr.cursor)
	tr.moveToLeaf(1)
	assert.Equal(t, 3, tr.cursor, "no leaf below keeps the cursor")

	tr.focus("a.b")
	assert.Equal(t, 1, tr.cursor)
}

func TestTree_Window(t *testing.T) {
	tr := tree{cursor: 0}
	for range 10 {
		tr.rows = append(tr.rows, newTree(`{"a":1}`).rows...)
	}

	start, end := tr.window(4)
	assert.Equal(t, 0, start)
	assert.Equal(t, 4, end)

	tr.cursor = 9
	start, end = tr.window(4)
	assert.Equal(t, 6, start)
	assert.Equal(t, 10, end)

	tr.cursor = 5
	start, end = tr.window(4)
	assert.Equal(t, 3, start)
	assert.Equal(t, 7, end)

	start, end = tr.window(0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		in, key, value string
	}{
		{"Accept: application/json", "Accept", "application/json"},
		{"X-Time: 12:30", "X-Time", "12:30"},
		{"Authorization", "Authorization", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		k, v := parseHeader(tt.in)
		assert.Equal(t, tt.key, k, tt.in)
		assert.Equal(t, tt.value, v, tt.in)
	}
}
