package menu

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// layout builds a container from a compact description: 'i' visible item,
// 'h' hidden item, 'w' weak separator, 's' hard separator.
func layout(desc string) *Node {
	root := newNode(KindMenu, "")

	for _, c := range desc {
		var n *Node

		switch c {
		case 'i':
			n = newNode(KindItem, "")
		case 'h':
			n = newNode(KindItem, "")
			n.visible = false
		case 'w':
			n = newNode(KindWeakSeparator, "")
		case 's':
			n = newNode(KindSeparator, "")
		}

		root.add(n)
	}

	return root
}

func weakVisibility(n *Node) []bool {
	var v []bool

	for _, c := range n.children {
		if c.kind == KindWeakSeparator {
			v = append(v, c.visible)
		}
	}

	return v
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		desc string
		want []bool
	}{
		{"iwi", []bool{true}},
		{"wi", []bool{false}},
		{"iw", []bool{false}},
		{"iwwi", []bool{true, false}},
		{"iwhwi", []bool{true, false}},
		{"ihwi", []bool{true}},
		{"iswi", []bool{false}},
		{"iwsi", []bool{true}},
		{"iwhh", []bool{false}},
		{"iwiwh", []bool{true, false}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			root := layout(tt.desc)

			Normalize(root)

			if diff := cmp.Diff(tt.want, weakVisibility(root)); diff != "" {
				t.Errorf("visibility mismatch (-want +got):\n%s", diff)
			}

			Normalize(root)

			if diff := cmp.Diff(tt.want, weakVisibility(root)); diff != "" {
				t.Errorf("second pass changed visibility (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalize_IgnoresPreviousState(t *testing.T) {
	a, b := layout("iwwi"), layout("iwwi")

	b.children[1].visible = false
	b.children[2].visible = true

	Normalize(a)
	Normalize(b)

	if diff := cmp.Diff(weakVisibility(a), weakVisibility(b)); diff != "" {
		t.Errorf("result depends on prior visibility (-a +b):\n%s", diff)
	}
}

func TestNormalize_Nested(t *testing.T) {
	root := layout("i")
	sub := layout("iw")
	root.add(sub)

	Normalize(root)

	if sub.children[1].visible {
		t.Error("expected trailing weak separator in a submenu to be hidden")
	}
}
