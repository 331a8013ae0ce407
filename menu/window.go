package menu

import "sync"

// Window is a minimal [Host] that keeps the menu bar it is given. It stands
// in for a toolkit window in tools and tests.
type Window struct {
	Title string

	mu  sync.Mutex
	bar *Node
}

// NewWindow returns an empty window.
func NewWindow(title string) *Window { return &Window{Title: title} }

// SetMenuBar implements [Host], destroying any previous bar.
func (w *Window) SetMenuBar(bar *Node) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.bar != nil && w.bar != bar {
		w.bar.Destroy()
	}

	w.bar = bar
}

// MenuBar returns the current menu bar, or nil.
func (w *Window) MenuBar() *Node {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.bar
}
