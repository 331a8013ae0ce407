package menu

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
)

// IconState selects which visual state of a clickable node an icon is
// shown in. Icons are opaque asset references; they are never loaded.
type IconState int

const (
	IconDefault IconState = iota
	IconDisabled
	IconDisabledSelected
	IconPressed
	IconRollover
	IconRolloverSelected
	IconSelected
)

var iconStateNames = [...]string{
	IconDefault:          "default",
	IconDisabled:         "disabled",
	IconDisabledSelected: "disabled&selected",
	IconPressed:          "pressed",
	IconRollover:         "rollover",
	IconRolloverSelected: "rollover&selected",
	IconSelected:         "selected",
}

func (s IconState) String() string {
	if s >= 0 && int(s) < len(iconStateNames) {
		return iconStateNames[s]
	}

	return "unknown"
}

// invertedPrefix marks an id registered with "~id=".
const invertedPrefix = "\x00"

// Node is one element of a menu tree.
//
// Nodes are created by [Build]. The host owns the tree once it has been
// attached; indexes only keep weak references, so a node that has been
// [Node.Destroy]ed or collected is no longer found by lookups.
type Node struct {
	kind    Kind
	caption string
	rich    bool

	key      string // index key, with invertedPrefix when inverted
	invoke   string
	enabled  bool
	visible  bool
	selected bool
	rollover bool

	mnemonic      Key
	mnemonicIndex int
	accelerator   KeyStroke
	hasAccel      bool
	icons         map[IconState]string

	parent   *Node
	children []*Node
	group    *Group
	tag      *Tag
	slider   *boundedRange

	actions   []func(context.Context) error
	changes   []func(*Node)
	destroyed bool
}

func newNode(kind Kind, caption string) *Node {
	return &Node{
		kind:          kind,
		caption:       caption,
		enabled:       true,
		visible:       true,
		mnemonicIndex: -1,
	}
}

// NewNode returns a detached node, for example to fill a [Tag]. Toggle and
// slider behavior is only available to nodes created by [Build].
func NewNode(kind Kind, caption string) *Node { return newNode(kind, caption) }

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Caption returns the display text. Rich captions are wrapped in <html>.
func (n *Node) Caption() string { return n.caption }

// Rich reports whether the caption is rich-text markup.
func (n *Node) Rich() bool { return n.rich }

// ID returns the id the node was registered under, without any inversion
// marker, or "" if it has none.
func (n *Node) ID() string { return strings.TrimPrefix(n.key, invertedPrefix) }

// Inverted reports whether the node was registered with "~id=", in which
// case reported boolean states are negated.
func (n *Node) Inverted() bool { return strings.HasPrefix(n.key, invertedPrefix) }

// Invoke returns the script method bound with "invoke=".
func (n *Node) Invoke() string { return n.invoke }

// Enabled reports whether the node accepts clicks.
func (n *Node) Enabled() bool { return n.enabled }

// Visible reports whether the node is shown.
func (n *Node) Visible() bool { return n.visible }

// Selected reports whether a toggle node is checked.
func (n *Node) Selected() bool { return n.selected }

// Rollover reports whether rollover effects are enabled.
func (n *Node) Rollover() bool { return n.rollover }

// Mnemonic returns the mnemonic key and the index of the caption character
// it underlines (-1 if none).
func (n *Node) Mnemonic() (Key, int) { return n.mnemonic, n.mnemonicIndex }

// Accelerator returns the key stroke bound to the node, if any.
func (n *Node) Accelerator() (KeyStroke, bool) { return n.accelerator, n.hasAccel }

// Icon returns the icon reference for state s.
func (n *Node) Icon(s IconState) string { return n.icons[s] }

// Icons returns a copy of all icon references.
func (n *Node) Icons() map[IconState]string { return maps.Clone(n.icons) }

// Parent returns the containing node, or nil for a detached node or the bar.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// Group returns the exclusive-selection group of a toggle node.
func (n *Node) Group() *Group { return n.group }

// Tag returns the tag of a [KindTag] placeholder.
func (n *Node) Tag() *Tag { return n.tag }

// Live reports whether n exists and has not been destroyed.
func (n *Node) Live() bool { return n != nil && !n.destroyed }

// Root returns the topmost ancestor of n.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}

	return n
}

// Walk calls fn for n and each descendant in depth-first order until fn
// returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}

	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}

	return true
}

// SetVisible shows or hides the node.
func (n *Node) SetVisible(v bool) { n.visible = v }

// SetEnabled enables or disables the node.
func (n *Node) SetEnabled(v bool) { n.enabled = v }

// SetSelected changes the state of a toggle node. Within a [Group],
// selecting a node deselects the others and a selected node cannot be
// deselected directly. It is a no-op for other kinds.
func (n *Node) SetSelected(v bool) {
	if !n.kind.Toggle() {
		return
	}

	if n.group != nil {
		n.group.set(n, v)

		return
	}

	n.selected = v
}

// SetAccelerator binds ks to the node without checking for collisions.
func (n *Node) SetAccelerator(ks KeyStroke) {
	n.accelerator, n.hasAccel = ks, true
}

// Click activates the node as if the user had chosen it. Toggle nodes flip
// (or join their group's selection) before the bound actions run. Clicking
// a disabled, destroyed or non-clickable node does nothing.
func (n *Node) Click(ctx context.Context) error {
	if !n.Live() || !n.enabled || !n.kind.Clickable() {
		return nil
	}

	if n.kind.Toggle() {
		if n.group != nil {
			n.group.set(n, true)
		} else {
			n.selected = !n.selected
		}
	}

	errs := make([]error, 0, len(n.actions))
	for _, fn := range n.actions {
		errs = append(errs, fn(ctx))
	}

	return errors.Join(errs...)
}

// Destroy detaches n from its parent and marks n and its descendants dead.
func (n *Node) Destroy() {
	n.detach()
	n.Walk(func(c *Node) bool {
		c.destroyed = true

		return true
	})
}

func (n *Node) add(c *Node) { n.insert(len(n.children), c) }

func (n *Node) insert(i int, c *Node) {
	c.detach()
	c.parent = n
	n.children = slices.Insert(n.children, min(i, len(n.children)), c)
}

func (n *Node) detach() {
	if p := n.parent; p != nil {
		if i := p.indexOf(n); i >= 0 {
			p.children = slices.Delete(p.children, i, i+1)
		}

		n.parent = nil
	}
}

func (n *Node) indexOf(c *Node) int { return slices.Index(n.children, c) }

func (n *Node) setIcon(s IconState, ref string) {
	if n.icons == nil {
		n.icons = make(map[IconState]string)
	}

	n.icons[s] = ref
}

func (n *Node) changed() {
	for _, fn := range n.changes {
		fn(n)
	}
}
