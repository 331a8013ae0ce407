package menu

import "slices"

// Group makes the selection of its toggle nodes mutually exclusive.
type Group struct {
	members  []*Node
	selected *Node
}

// Members returns the nodes in the group in insertion order.
func (g *Group) Members() []*Node { return slices.Clone(g.members) }

// Selection returns the selected member, or nil.
func (g *Group) Selection() *Node { return g.selected }

// add joins n to g. A selected node joining a group that already has a
// selection is deselected.
func (g *Group) add(n *Node) {
	g.members = append(g.members, n)
	n.group = g

	if n.selected {
		if g.selected != nil {
			n.selected = false
		} else {
			g.selected = n
		}
	}
}

func (g *Group) set(n *Node, v bool) {
	if !v || g.selected == n {
		return
	}

	if old := g.selected; old != nil {
		old.selected = false
	}

	g.selected = n
	n.selected = true
}
