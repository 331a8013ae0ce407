package menu

import "context"

// Listener receives user-facing events from built nodes. Ids are reported
// without the inversion marker.
type Listener interface {
	// ItemClicked is called when a plain item or submenu is clicked.
	ItemClicked(id string)
	// ValueUpdated is called with a bool when a toggle item is clicked
	// (negated for inverted ids) and with an int when a slider changes.
	ValueUpdated(id string, value any)
}

// ListenerFuncs adapts a pair of functions to [Listener]. Nil fields are
// ignored.
type ListenerFuncs struct {
	Clicked func(id string)
	Updated func(id string, value any)
}

// ItemClicked implements [Listener].
func (f ListenerFuncs) ItemClicked(id string) {
	if f.Clicked != nil {
		f.Clicked(id)
	}
}

// ValueUpdated implements [Listener].
func (f ListenerFuncs) ValueUpdated(id string, value any) {
	if f.Updated != nil {
		f.Updated(id, value)
	}
}

// Invoker runs script methods bound to nodes with "invoke=". After a
// successful build, the method "main" is run once.
type Invoker interface {
	Run(ctx context.Context, method string, items *Index, params ...string) error
}

// MethodChecker is implemented by invokers that can report whether a
// method exists. Build skips "main" when the invoker does not declare it.
type MethodChecker interface {
	HasMethod(name string) bool
}

// Host is a container that can display a menu bar.
type Host interface {
	SetMenuBar(bar *Node)
}
