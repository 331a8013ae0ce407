package menu

import (
	"iter"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"weak"
)

// Index maps ids to the nodes registered under them.
//
// The index does not own its nodes. Lookups of nodes that were destroyed or
// collected return nil.
type Index struct {
	mu    sync.RWMutex
	root  weak.Pointer[Node]
	keys  []string
	nodes map[string]weak.Pointer[Node]
}

func newIndex(root *Node) *Index {
	return &Index{
		root:  weak.Make(root),
		nodes: make(map[string]weak.Pointer[Node]),
	}
}

// DisplayID converts an index key to the form used in configuration
// files: inverted ids are shown with a leading "~".
func DisplayID(key string) string {
	if rest, ok := strings.CutPrefix(key, invertedPrefix); ok {
		return "~" + rest
	}

	return key
}

// IndexKey converts a display id ("~name" for inverted ids) to an index key.
func IndexKey(id string) string {
	if rest, ok := strings.CutPrefix(id, "~"); ok {
		return invertedPrefix + rest
	}

	return id
}

func (x *Index) add(key string, n *Node) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, ok := x.nodes[key]; ok {
		return ErrDuplicateID.With(slog.String("id", DisplayID(key)))
	}

	n.key = key
	x.nodes[key] = weak.Make(n)
	x.keys = append(x.keys, key)

	return nil
}

// Lookup returns the live node stored under the exact index key, or nil.
func (x *Index) Lookup(key string) *Node {
	x.mu.RLock()
	p, ok := x.nodes[key]
	x.mu.RUnlock()

	if !ok {
		return nil
	}

	if n := p.Value(); n.Live() {
		return n
	}

	return nil
}

// Resolve finds a node by id. It accepts index keys and display ids, and
// falls back to the inverted registration of a bare id.
func (x *Index) Resolve(id string) *Node {
	if n := x.Lookup(IndexKey(id)); n != nil {
		return n
	}

	if !strings.HasPrefix(id, invertedPrefix) && !strings.HasPrefix(id, "~") {
		return x.Lookup(invertedPrefix + id)
	}

	return nil
}

// Len returns the number of registered ids, live or not.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()

	return len(x.keys)
}

// IDs returns the display ids of all live nodes in registration order.
func (x *Index) IDs() []string {
	ids := make([]string, 0, x.Len())
	for id := range x.All() {
		ids = append(ids, id)
	}

	return ids
}

// All iterates over display ids and live nodes in registration order.
func (x *Index) All() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		x.mu.RLock()
		keys := slices.Clone(x.keys)
		x.mu.RUnlock()

		for _, key := range keys {
			if n := x.Lookup(key); n != nil {
				if !yield(DisplayID(key), n) {
					return
				}
			}
		}
	}
}

// Root returns the menu bar the index was built for, or nil once it is gone.
func (x *Index) Root() *Node {
	if n := x.root.Value(); n.Live() {
		return n
	}

	return nil
}

// Refresh recomputes every tag in the tree and normalizes weak separators.
// Call it after changing the visibility of nodes.
func (x *Index) Refresh() {
	root := x.Root()
	if root == nil {
		return
	}

	var tags []*Tag

	root.Walk(func(n *Node) bool {
		if n.kind == KindTag && n.tag != nil {
			tags = append(tags, n.tag)
		}

		return true
	})

	for _, t := range tags {
		t.update()
	}

	Normalize(root)
}
