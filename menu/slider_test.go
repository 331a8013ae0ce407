package menu

import "testing"

func slider(t *testing.T, value, lo, hi int) (*Node, *[]int) {
	t.Helper()

	r, ok := newBoundedRange(value, 0, lo, hi)
	if !ok {
		t.Fatalf("invalid range %d <= %d <= %d", lo, value, hi)
	}

	var events []int

	n := newNode(KindSlider, "")
	n.slider = r
	n.changes = append(n.changes, func(n *Node) { events = append(events, n.Value()) })

	return n, &events
}

func TestNewBoundedRange(t *testing.T) {
	tests := []struct {
		value, extent, lo, hi int
		ok                    bool
	}{
		{5, 0, 0, 10, true},
		{0, 0, 0, 0, true},
		{5, 5, 0, 10, true},
		{5, 6, 0, 10, false},
		{-1, 0, 0, 10, false},
		{11, 0, 0, 10, false},
	}

	for _, tt := range tests {
		if _, ok := newBoundedRange(tt.value, tt.extent, tt.lo, tt.hi); ok != tt.ok {
			t.Errorf("newBoundedRange(%d, %d, %d, %d): expected ok=%v",
				tt.value, tt.extent, tt.lo, tt.hi, tt.ok)
		}
	}
}

func TestSlider_SetValue(t *testing.T) {
	n, events := slider(t, 5, 0, 10)

	n.SetExtent(2)
	n.SetValue(20)

	if n.Value() != 8 {
		t.Errorf("expected value clamped to max-extent 8, got %d", n.Value())
	}

	n.SetValue(-3)

	if n.Value() != 0 {
		t.Errorf("expected value clamped to min 0, got %d", n.Value())
	}

	n.SetValue(0)

	if got := len(*events); got != 3 {
		t.Errorf("expected 3 change events, got %d", got)
	}
}

func TestSlider_SetMinimumMaximum(t *testing.T) {
	n, _ := slider(t, 5, 0, 10)

	n.SetMinimum(7)

	if n.Minimum() != 7 || n.Value() != 7 {
		t.Errorf("expected min and value 7, got min=%d value=%d", n.Minimum(), n.Value())
	}

	n.SetMaximum(3)

	if n.Maximum() != 3 || n.Minimum() != 3 || n.Value() != 3 {
		t.Errorf("expected everything collapsed to 3, got min=%d value=%d max=%d",
			n.Minimum(), n.Value(), n.Maximum())
	}

	n.SetMinimum(20)

	if n.Maximum() != 20 || n.Value() != 20 {
		t.Errorf("expected max and value raised to 20, got max=%d value=%d",
			n.Maximum(), n.Value())
	}
}

func TestSlider_NonSlider(t *testing.T) {
	n := newNode(KindItem, "x")
	n.SetValue(5)

	if n.Value() != 0 || n.Maximum() != 0 {
		t.Error("expected zero model for a non-slider")
	}
}
