package menu

import "strconv"

// Kind identifies the type of a [Node].
type Kind int

const (
	// KindBar is the root of a menu tree.
	KindBar Kind = iota
	// KindMenu is a submenu that contains other nodes.
	KindMenu
	// KindItem is a plain clickable item.
	KindItem
	// KindCheck is an independently toggled item.
	KindCheck
	// KindRadio is a toggled item that is usually grouped.
	KindRadio
	// KindSeparator is a separator that is always shown.
	KindSeparator
	// KindWeakSeparator is a separator shown only between visible items.
	KindWeakSeparator
	// KindSpacer is an empty filler.
	KindSpacer
	// KindTag is the invisible placeholder of a [Tag].
	KindTag
	// KindSlider is a bounded integer range control.
	KindSlider
)

var kindNames = [...]string{
	KindBar:           "bar",
	KindMenu:          "menu",
	KindItem:          "item",
	KindCheck:         "check",
	KindRadio:         "radio",
	KindSeparator:     "separator",
	KindWeakSeparator: "weak-separator",
	KindSpacer:        "spacer",
	KindTag:           "tag",
	KindSlider:        "slider",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Container reports whether nodes of kind k hold children.
func (k Kind) Container() bool {
	switch k {
	case KindBar, KindMenu:
		return true
	case KindItem, KindCheck, KindRadio, KindSeparator, KindWeakSeparator,
		KindSpacer, KindTag, KindSlider:
		return false
	}

	return false
}

// Clickable reports whether nodes of kind k respond to [Node.Click].
func (k Kind) Clickable() bool {
	switch k {
	case KindMenu, KindItem, KindCheck, KindRadio:
		return true
	case KindBar, KindSeparator, KindWeakSeparator, KindSpacer, KindTag,
		KindSlider:
		return false
	}

	return false
}

// Toggle reports whether nodes of kind k carry a selected state.
func (k Kind) Toggle() bool { return k == KindCheck || k == KindRadio }

// Separator reports whether nodes of kind k separate their siblings.
// Tag placeholders count as separators.
func (k Kind) Separator() bool {
	return k == KindSeparator || k == KindWeakSeparator || k == KindTag
}
