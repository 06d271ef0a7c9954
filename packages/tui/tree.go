package tui

import (
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/pathpick/packages/jsonpath"
)

// tree is the response document flattened in document order, without the root.
type tree struct {
	rows   []jsonpath.Node
	cursor int
}

func newTree(raw string) tree {
	var t tree
	for node := range jsonpath.WalkDocument(raw) {
		if node.Depth() == 0 {
			continue
		}
		t.rows = append(t.rows, node)
	}
	return t
}

func (t *tree) move(delta int) {
	if len(t.rows) == 0 {
		return
	}
	t.cursor = min(max(t.cursor+delta, 0), len(t.rows)-1)
}

// moveToLeaf moves in direction dir until a leaf is under the cursor.
func (t *tree) moveToLeaf(dir int) {
	for i := t.cursor + dir; i >= 0 && i < len(t.rows); i += dir {
		if t.rows[i].IsLeaf() {
			t.cursor = i
			return
		}
	}
}

// focus places the cursor on the row whose encoded path is encoded.
func (t *tree) focus(encoded string) {
	for i, n := range t.rows {
		if n.Path.String() == encoded {
			t.cursor = i
			return
		}
	}
}

func (t tree) current() (jsonpath.Node, bool) {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return jsonpath.Node{}, false
	}
	return t.rows[t.cursor], true
}

func (t tree) rowLabel(n jsonpath.Node) string {
	indent := strings.Repeat("  ", n.Depth()-1)
	last, _ := n.Path.Last()
	name := last.String()
	if last.IsIndex() {
		name = fmt.Sprintf("[%d]", last.Index())
	}
	if n.IsLeaf() {
		return fmt.Sprintf("%s%s: %s", indent, name, leafText(n))
	}
	if n.Kind == jsonpath.KindArray {
		return fmt.Sprintf("%s%s [%d]", indent, name, n.Len)
	}
	return fmt.Sprintf("%s%s {%d}", indent, name, n.Len)
}

func leafText(n jsonpath.Node) string {
	switch v := n.Value.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// window returns the visible row range keeping the cursor in view.
func (t tree) window(height int) (int, int) {
	if height <= 0 || len(t.rows) <= height {
		return 0, len(t.rows)
	}
	start := t.cursor - height/2
	start = min(max(start, 0), len(t.rows)-height)
	return start, start + height
}
