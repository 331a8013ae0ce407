package menu

import "math"

// boundedRange holds a slider model. It maintains
// min <= value <= value+extent <= max.
type boundedRange struct {
	min, max, value, extent int
	vertical                bool
}

func newBoundedRange(value, extent, lo, hi int) (*boundedRange, bool) {
	if hi < value+extent || value+extent < value || value < lo {
		return nil, false
	}

	return &boundedRange{min: lo, max: hi, value: value, extent: extent}, true
}

// set stores new properties, adjusting them to keep the model consistent,
// and reports whether anything changed.
func (r *boundedRange) set(value, extent, lo, hi int) bool {
	if lo > hi {
		lo = hi
	}

	if value > hi {
		hi = value
	}

	if value < lo {
		lo = value
	}

	if int64(extent)+int64(value) > int64(hi) {
		extent = hi - value
	}

	if extent < 0 {
		extent = 0
	}

	if value == r.value && extent == r.extent && lo == r.min && hi == r.max {
		return false
	}

	r.value, r.extent, r.min, r.max = value, extent, lo, hi

	return true
}

func (r *boundedRange) setValue(v int) bool {
	v = min(v, math.MaxInt-r.extent)
	v = max(v, r.min)

	if v+r.extent > r.max {
		v = r.max - r.extent
	}

	return r.set(v, r.extent, r.min, r.max)
}

func (r *boundedRange) setExtent(e int) bool {
	e = max(0, e)
	if r.value+e > r.max {
		e = r.max - r.value
	}

	return r.set(r.value, e, r.min, r.max)
}

func (r *boundedRange) setMinimum(lo int) bool {
	hi := max(lo, r.max)
	v := max(lo, r.value)
	e := min(hi-v, r.extent)

	return r.set(v, e, lo, hi)
}

func (r *boundedRange) setMaximum(hi int) bool {
	lo := min(hi, r.min)
	e := min(hi-lo, r.extent)
	v := min(hi-e, r.value)

	return r.set(v, e, lo, hi)
}

// Value returns the current value of a slider node.
func (n *Node) Value() int { return n.rangeOrZero().value }

// Minimum returns the lower bound of a slider node.
func (n *Node) Minimum() int { return n.rangeOrZero().min }

// Maximum returns the upper bound of a slider node.
func (n *Node) Maximum() int { return n.rangeOrZero().max }

// Extent returns the inner extent of a slider node.
func (n *Node) Extent() int { return n.rangeOrZero().extent }

// Vertical reports whether a slider node is oriented vertically.
func (n *Node) Vertical() bool { return n.rangeOrZero().vertical }

// SetValue moves a slider, clamping to [min, max-extent].
func (n *Node) SetValue(v int) { n.updateRange((*boundedRange).setValue, v) }

// SetExtent changes a slider extent, clamping to [0, max-value].
func (n *Node) SetExtent(e int) { n.updateRange((*boundedRange).setExtent, e) }

// SetMinimum changes a slider lower bound, raising value and max if needed.
func (n *Node) SetMinimum(v int) { n.updateRange((*boundedRange).setMinimum, v) }

// SetMaximum changes a slider upper bound, lowering value and min if needed.
func (n *Node) SetMaximum(v int) { n.updateRange((*boundedRange).setMaximum, v) }

func (n *Node) updateRange(fn func(*boundedRange, int) bool, v int) {
	if n.slider == nil {
		return
	}

	if fn(n.slider, v) {
		n.changed()
	}
}

func (n *Node) rangeOrZero() boundedRange {
	if n.slider == nil {
		return boundedRange{}
	}

	return *n.slider
}
