package menu

import (
	"io"
	"strconv"
	"strings"
)

// Snapshot is a serializable copy of the state of a node and its subtree.
type Snapshot struct {
	Kind        string            `json:"kind"                  yaml:"kind"                  cbor:"kind"`
	ID          string            `json:"id,omitempty"          yaml:"id,omitempty"          cbor:"id,omitempty"`
	Caption     string            `json:"caption,omitempty"     yaml:"caption,omitempty"     cbor:"caption,omitempty"`
	Enabled     bool              `json:"enabled"               yaml:"enabled"               cbor:"enabled"`
	Visible     bool              `json:"visible"               yaml:"visible"               cbor:"visible"`
	Selected    bool              `json:"selected,omitempty"    yaml:"selected,omitempty"    cbor:"selected,omitempty"`
	Inverted    bool              `json:"inverted,omitempty"    yaml:"inverted,omitempty"    cbor:"inverted,omitempty"`
	Invoke      string            `json:"invoke,omitempty"      yaml:"invoke,omitempty"      cbor:"invoke,omitempty"`
	Accelerator string            `json:"accelerator,omitempty" yaml:"accelerator,omitempty" cbor:"accelerator,omitempty"`
	Mnemonic    string            `json:"mnemonic,omitempty"    yaml:"mnemonic,omitempty"    cbor:"mnemonic,omitempty"`
	Icons       map[string]string `json:"icons,omitempty"       yaml:"icons,omitempty"       cbor:"icons,omitempty"`
	Tag         string            `json:"tag,omitempty"         yaml:"tag,omitempty"         cbor:"tag,omitempty"`
	Slider      *SliderSnapshot   `json:"slider,omitempty"      yaml:"slider,omitempty"      cbor:"slider,omitempty"`
	Children    []Snapshot        `json:"children,omitempty"    yaml:"children,omitempty"    cbor:"children,omitempty"`
}

// SliderSnapshot is the model of a slider node.
type SliderSnapshot struct {
	Min      int  `json:"min"                yaml:"min"                cbor:"min"`
	Max      int  `json:"max"                yaml:"max"                cbor:"max"`
	Value    int  `json:"value"              yaml:"value"              cbor:"value"`
	Extent   int  `json:"extent"             yaml:"extent"             cbor:"extent"`
	Vertical bool `json:"vertical,omitempty" yaml:"vertical,omitempty" cbor:"vertical,omitempty"`
}

// Snap captures n and its descendants.
func Snap(n *Node) Snapshot {
	s := Snapshot{
		Kind:     n.kind.String(),
		ID:       n.ID(),
		Caption:  n.caption,
		Enabled:  n.enabled,
		Visible:  n.visible,
		Selected: n.selected,
		Inverted: n.Inverted(),
		Invoke:   n.invoke,
	}

	if n.hasAccel {
		s.Accelerator = n.accelerator.String()
	}

	if n.mnemonic != KeyNone {
		s.Mnemonic = n.mnemonic.String()
	}

	if len(n.icons) > 0 {
		s.Icons = make(map[string]string, len(n.icons))
		for state, ref := range n.icons {
			s.Icons[state.String()] = ref
		}
	}

	if n.tag != nil {
		s.Tag = n.tag.name
	}

	if r := n.slider; r != nil {
		s.Slider = &SliderSnapshot{
			Min:      r.min,
			Max:      r.max,
			Value:    r.value,
			Extent:   r.extent,
			Vertical: r.vertical,
		}
	}

	for _, c := range n.children {
		s.Children = append(s.Children, Snap(c))
	}

	return s
}

// Env returns the flat view of a node used by filter expressions.
func Env(id string, n *Node) map[string]any {
	return map[string]any{
		"id":       id,
		"kind":     n.kind.String(),
		"caption":  n.caption,
		"enabled":  n.enabled,
		"visible":  n.visible,
		"selected": n.selected,
		"inverted": n.Inverted(),
		"invoke":   n.invoke,
		"value":    n.Value(),
	}
}

// WriteText writes s as an indented outline with one node per line. The
// menu bar itself is not written, only its children.
func (s Snapshot) WriteText(w io.Writer) error {
	if s.Kind != KindBar.String() {
		return s.writeText(w, 0)
	}

	for _, c := range s.Children {
		if err := c.writeText(w, 0); err != nil {
			return err
		}
	}

	return nil
}

func (s Snapshot) writeText(w io.Writer, depth int) error {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(s.Kind)

	if s.Caption != "" {
		sb.WriteString(" " + strconv.Quote(s.Caption))
	}

	if s.ID != "" {
		id := s.ID
		if s.Inverted {
			id = "~" + id
		}

		sb.WriteString(" #" + id)
	}

	for _, f := range s.flags() {
		sb.WriteString(" " + f)
	}

	sb.WriteByte('\n')

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}

	for _, c := range s.Children {
		if err := c.writeText(w, depth+1); err != nil {
			return err
		}
	}

	return nil
}

func (s Snapshot) flags() []string {
	var flags []string

	if !s.Visible {
		flags = append(flags, "hidden")
	}

	if !s.Enabled {
		flags = append(flags, "disabled")
	}

	if s.Selected {
		flags = append(flags, "selected")
	}

	if s.Accelerator != "" {
		flags = append(flags, "accelerator="+s.Accelerator)
	}

	if s.Invoke != "" {
		flags = append(flags, "invoke="+s.Invoke)
	}

	if s.Tag != "" {
		flags = append(flags, "tag="+s.Tag)
	}

	if r := s.Slider; r != nil {
		flags = append(flags,
			"value="+strconv.Itoa(r.Value),
			"range="+strconv.Itoa(r.Min)+".."+strconv.Itoa(r.Max))

		if r.Extent != 0 {
			flags = append(flags, "extent="+strconv.Itoa(r.Extent))
		}

		if r.Vertical {
			flags = append(flags, "vertical")
		}
	}

	return flags
}
