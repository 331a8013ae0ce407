package menp

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/jmml/menu"
)

type attr int

const (
	attrVisible attr = iota
	attrEnabled
	attrSelected
)

// setting is a node state that "!" applies and "?" tests.
type setting struct {
	attr attr
	want bool
}

var settings = map[string]setting{
	"visible":        {attrVisible, true},
	"visible=true":   {attrVisible, true},
	"visible=false":  {attrVisible, false},
	"hidden":         {attrVisible, false},
	"hidden=true":    {attrVisible, false},
	"hidden=false":   {attrVisible, true},
	"enabled":        {attrEnabled, true},
	"enabled=true":   {attrEnabled, true},
	"enabled=false":  {attrEnabled, false},
	"disabled":       {attrEnabled, false},
	"disabled=true":  {attrEnabled, false},
	"disabled=false": {attrEnabled, true},
	"selected":       {attrSelected, true},
	"selected=true":  {attrSelected, true},
	"selected=false": {attrSelected, false},
}

// Settings returns the sorted names accepted by the "!" and "?" operators,
// followed by the "accelerator=" prefix that only "!" accepts.
func Settings() []string {
	return append(slices.Sorted(maps.Keys(settings)), acceleratorSetting)
}

const acceleratorSetting = "accelerator="

func parseSetting(s string) (setting, error) {
	if st, ok := settings[s]; ok {
		return st, nil
	}

	err := ErrUnknownSetting.With(slog.String("setting", s))
	if alt := suggest(s, slices.Collect(maps.Keys(settings))); alt != "" {
		err = err.With(slog.String("suggestion", alt))
	}

	return setting{}, err
}

// apply changes n. Selection goes through the node's group, and it is
// ignored on nodes that are not toggles.
func (s setting) apply(n *menu.Node) {
	switch s.attr {
	case attrVisible:
		n.SetVisible(s.want)
	case attrEnabled:
		n.SetEnabled(s.want)
	case attrSelected:
		n.SetSelected(s.want)
	}
}

// holds reports whether n is in state s. Selection queries are false for
// nodes that are not toggles.
func (s setting) holds(n *menu.Node) bool {
	switch s.attr {
	case attrVisible:
		return n.Visible() == s.want
	case attrEnabled:
		return n.Enabled() == s.want
	case attrSelected:
		return n.Kind().Toggle() && n.Selected() == s.want
	}

	return false
}
