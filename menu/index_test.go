package menu

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIndex_AddLookup(t *testing.T) {
	root := newNode(KindBar, "")
	a, b := newNode(KindItem, "a"), newNode(KindCheck, "b")
	root.add(a)
	root.add(b)

	x := newIndex(root)

	if err := x.add("a", a); err != nil {
		t.Fatal(err)
	}

	if err := x.add(invertedPrefix+"b", b); err != nil {
		t.Fatal(err)
	}

	if err := x.add("a", b); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected %v, got %v", ErrDuplicateID, err)
	}

	if x.Lookup("a") != a || x.Resolve("~b") != b || x.Resolve("b") != b {
		t.Error("lookup returned the wrong node")
	}

	if b.ID() != "b" || !b.Inverted() {
		t.Errorf("expected inverted id b, got %q inverted=%v", b.ID(), b.Inverted())
	}

	if diff := cmp.Diff([]string{"a", "~b"}, x.IDs()); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}

	a.Destroy()

	if x.Lookup("a") != nil {
		t.Error("expected destroyed node to be gone")
	}

	if x.Len() != 2 || len(x.IDs()) != 1 {
		t.Errorf("expected 2 registrations and 1 live id, got %d and %v", x.Len(), x.IDs())
	}

	if x.Root() != root {
		t.Error("expected live root")
	}

	root.Destroy()

	if x.Root() != nil {
		t.Error("expected destroyed root to be gone")
	}
}

func TestDisplayID(t *testing.T) {
	for _, tt := range []struct{ key, display string }{
		{"plain", "plain"},
		{invertedPrefix + "dark", "~dark"},
	} {
		if got := DisplayID(tt.key); got != tt.display {
			t.Errorf("DisplayID(%q): expected %q, got %q", tt.key, tt.display, got)
		}

		if got := IndexKey(tt.display); got != tt.key {
			t.Errorf("IndexKey(%q): expected %q, got %q", tt.display, tt.key, got)
		}
	}
}

func TestWindow_SetMenuBar(t *testing.T) {
	w := NewWindow("main")
	first, second := newNode(KindBar, ""), newNode(KindBar, "")

	w.SetMenuBar(first)
	w.SetMenuBar(first)

	if !first.Live() {
		t.Fatal("setting the same bar twice must not destroy it")
	}

	w.SetMenuBar(second)

	if first.Live() || w.MenuBar() != second {
		t.Error("expected the first bar replaced and destroyed")
	}
}

func TestGroup_Exclusive(t *testing.T) {
	g := &Group{}
	a, b := newNode(KindRadio, "a"), newNode(KindRadio, "b")
	a.selected, b.selected = true, true

	g.add(a)
	g.add(b)

	if !a.Selected() || b.Selected() || g.Selection() != a {
		t.Fatal("expected the first selected member to win")
	}

	b.SetSelected(true)

	if a.Selected() || !b.Selected() || g.Selection() != b {
		t.Error("expected selection to move to b")
	}

	b.SetSelected(false)

	if !b.Selected() {
		t.Error("expected a grouped selection not to be cleared directly")
	}

	if diff := cmp.Diff([]string{"a", "b"}, captions(g.Members())); diff != "" {
		t.Errorf("members mismatch (-want +got):\n%s", diff)
	}
}

func TestSnap(t *testing.T) {
	root := newNode(KindBar, "")
	s := newNode(KindSlider, "")
	s.slider, _ = newBoundedRange(3, 0, 0, 9)
	s.key = invertedPrefix + "zoom"
	item := newNode(KindItem, "Go")
	item.SetAccelerator(KeyStroke{Modifiers: ModCtrl, Key: 'G'})
	item.setIcon(IconPressed, "down.png")
	root.add(s)
	root.add(item)

	want := Snapshot{
		Kind: "bar", Enabled: true, Visible: true,
		Children: []Snapshot{
			{
				Kind: "slider", ID: "zoom", Inverted: true, Enabled: true, Visible: true,
				Slider: &SliderSnapshot{Min: 0, Max: 9, Value: 3},
			},
			{
				Kind: "item", Caption: "Go", Enabled: true, Visible: true,
				Accelerator: "<ctrl>G", Icons: map[string]string{"pressed": "down.png"},
			},
		},
	}

	if diff := cmp.Diff(want, Snap(root)); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshot_WriteText(t *testing.T) {
	s := Snapshot{
		Kind: "bar", Enabled: true, Visible: true,
		Children: []Snapshot{
			{
				Kind: "menu", Caption: "File", ID: "file", Enabled: true, Visible: true,
				Children: []Snapshot{
					{Kind: "item", Caption: "Open", ID: "open", Enabled: true, Visible: true, Invoke: "open", Accelerator: "<ctrl>O"},
					{Kind: "weak-separator", Enabled: true},
					{Kind: "check", Caption: "Wrap", ID: "wrap", Inverted: true, Selected: true, Visible: true},
				},
			},
			{
				Kind: "slider", ID: "zoom", Enabled: true, Visible: true,
				Slider: &SliderSnapshot{Min: 1, Max: 9, Value: 3, Extent: 2},
			},
		},
	}

	var sb strings.Builder
	if err := s.WriteText(&sb); err != nil {
		t.Fatal(err)
	}

	want := `menu "File" #file
  item "Open" #open accelerator=<ctrl>O invoke=open
  weak-separator hidden
  check "Wrap" #~wrap disabled selected
slider #zoom value=3 range=1..9 extent=2
`

	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("outline mismatch (-want +got):\n%s", diff)
	}
}
