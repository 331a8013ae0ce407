package menu

// Normalize shows each weak separator in the tree rooted at n only where it
// separates visible non-separator items, and never as the last visible
// child of its container. It is idempotent.
func Normalize(n *Node) {
	n.Walk(func(c *Node) bool {
		if c.kind.Container() {
			normalizeChildren(c.children)
		}

		return true
	})
}

func normalizeChildren(children []*Node) {
	var (
		needed bool
		last   *Node
	)

	for _, c := range children {
		if c.kind == KindWeakSeparator {
			c.visible = needed
			needed = false

			if c.visible {
				last = c
			}

			continue
		}

		if !c.visible {
			continue
		}

		needed = !c.kind.Separator()
		last = c
	}

	if last != nil && last.kind == KindWeakSeparator {
		last.visible = false
	}
}
