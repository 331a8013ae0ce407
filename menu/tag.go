package menu

import (
	"slices"
	"sync"
	"weak"
)

// Tag is a named placeholder for a run of items that is filled in at
// runtime. The placeholder itself is an invisible [KindTag] node; the
// managed items are kept directly after it in the same container.
//
// When every managed item is hidden, the optional empty indicator is shown
// in their place. The optional alive indicator is visible exactly when at
// least one managed item is.
type Tag struct {
	name   string
	node   *Node
	items  []*Node
	empty  *Node
	alive  *Node
	host   *Node   // container the placed nodes were inserted into
	placed []*Node // nodes inserted after the placeholder
}

func newTag(name string) *Tag {
	t := &Tag{name: name}

	t.node = newNode(KindTag, "")
	t.node.visible = false
	t.node.tag = t

	return t
}

// Name returns the tag name.
func (t *Tag) Name() string { return t.name }

// Node returns the placeholder node.
func (t *Tag) Node() *Node { return t.node }

// Items returns the managed items.
func (t *Tag) Items() []*Node { return slices.Clone(t.items) }

// EmptyIndicator returns the node shown when no item is visible.
func (t *Tag) EmptyIndicator() *Node { return t.empty }

// AliveIndicator returns the node whose visibility tracks the items.
func (t *Tag) AliveIndicator() *Node { return t.alive }

// SetItems replaces the managed items and updates the tree.
func (t *Tag) SetItems(items ...*Node) {
	t.items = slices.Clone(items)
	t.Update()
}

// SetEmptyIndicator installs n as the empty indicator and updates the tree.
func (t *Tag) SetEmptyIndicator(n *Node) {
	t.empty = n
	t.Update()
}

// SetAliveIndicator installs n as the alive indicator and updates the tree.
func (t *Tag) SetAliveIndicator(n *Node) {
	t.alive = n
	t.Update()
}

// Update lays out the managed items after the placeholder, shows the empty
// indicator if none of them is visible, sets the alive indicator, and
// normalizes the weak separators of the whole tree.
func (t *Tag) Update() {
	t.update()

	if t.node.parent != nil {
		Normalize(t.node.Root())
	}
}

func (t *Tag) update() {
	empty := true

	for _, it := range t.items {
		if it.Live() && it.visible {
			empty = false

			break
		}
	}

	if t.alive != nil {
		t.alive.visible = !empty
	}

	t.release()

	parent := t.node.parent
	if parent == nil {
		return
	}

	t.host = parent
	at := parent.indexOf(t.node) + 1

	for _, it := range t.items {
		if it.Live() {
			t.put(at, it)
		}
	}

	if empty && t.empty.Live() {
		t.put(at, t.empty)
	}
}

// put inserts n after the nodes already placed behind index at.
func (t *Tag) put(at int, n *Node) {
	t.host.insert(at+len(t.placed), n)
	t.placed = append(t.placed, n)
}

// release detaches the placed nodes still held by the container they were
// inserted into. Nodes moved or destroyed since are left alone.
func (t *Tag) release() {
	for _, n := range t.placed {
		if n.parent == t.host && !n.destroyed {
			n.detach()
		}
	}

	t.host = nil
	t.placed = nil
}

// replace puts the placeholder where stub is, moving it and its items out
// of any container they were placed in before, and removes stub.
func (t *Tag) replace(stub *Node) {
	t.release()
	t.node.detach()

	if parent := stub.parent; parent != nil {
		i := parent.indexOf(stub)
		stub.detach()
		parent.insert(i, t.node)
	}

	t.update()
}

// TagRegistry hands out tags by name. It holds weak references, so a tag
// whose placeholder was destroyed or collected is created anew on the next
// lookup. A registry is safe for concurrent use.
type TagRegistry struct {
	mu sync.Mutex
	m  map[string]weak.Pointer[Tag]
}

// DefaultTagRegistry is shared by builds that do not set [WithTags].
//
//nolint:gochecknoglobals
var DefaultTagRegistry = NewTagRegistry()

// NewTagRegistry returns an empty registry.
func NewTagRegistry() *TagRegistry {
	return &TagRegistry{m: make(map[string]weak.Pointer[Tag])}
}

// Get returns the live tag named name, creating it if necessary.
func (r *TagRegistry) Get(name string) *Tag {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.m[name]; ok {
		if t := p.Value(); t != nil && t.node.Live() {
			return t
		}
	}

	t := newTag(name)
	r.m[name] = weak.Make(t)

	return t
}

// Lookup returns the live tag named name without creating one.
func (r *TagRegistry) Lookup(name string) (*Tag, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.m[name]; ok {
		if t := p.Value(); t != nil && t.node.Live() {
			return t, true
		}
	}

	return nil, false
}
