package menu

import (
	"errors"
	"log/slog"
	"strings"
)

// Modifier is a bit mask of modifier keys held during a key stroke.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModAltGraph
	ModShift
	ModMeta
)

var modifierNames = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "ctrl"},
	{ModAlt, "alt"},
	{ModAltGraph, "altgr"},
	{ModShift, "shift"},
	{ModMeta, "meta"},
}

// modifierSynonyms maps normalized modifier tags to their bit. The zero
// Modifier marks the release flag.
var modifierSynonyms = map[string]Modifier{
	"A": ModAlt, "ALT": ModAlt, "ALTERNATIVE": ModAlt,
	"G": ModAltGraph, "ALTGR": ModAltGraph, "ALTGRAPH": ModAltGraph,
	"GRAPH": ModAltGraph,
	"S":     ModShift, "SHF": ModShift, "SFT": ModShift, "SHFT": ModShift,
	"SHIFT": ModShift,
	"M":     ModMeta, "MT": ModMeta, "META": ModMeta,
	"C": ModCtrl, "CTR": ModCtrl, "CTRL": ModCtrl, "CNTRL": ModCtrl,
	"CONTROL": ModCtrl,
	"R":       0, "RLS": 0, "RELEASE": 0,
}

// KeyStroke is a key combination. Two strokes are equal when their
// modifiers, key and release flag all match.
type KeyStroke struct {
	Modifiers Modifier
	Key       Key
	OnRelease bool
}

// ParseKeyStroke parses an accelerator such as "<ctrl><shift>s" or
// "<c><release> F5". Surrounding double quotes are ignored.
//
// Unknown modifier tags and key names do not prevent a result: the stroke
// is returned with whatever could be resolved, together with an error
// wrapping [ErrUnknownModifier] or [ErrUnknownKey] that callers may treat
// as a warning.
func ParseKeyStroke(s string) (KeyStroke, error) {
	var (
		ks   KeyStroke
		errs []error
	)

	rest := strings.TrimSpace(s)
	if len(rest) >= 2 && rest[0] == '"' && rest[len(rest)-1] == '"' {
		rest = strings.TrimSpace(rest[1 : len(rest)-1])
	}

	for strings.HasPrefix(rest, "<") {
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			break
		}

		tag := strings.ToUpper(rest[1:end])
		tag = strings.NewReplacer("-", "", " ", "", "_", "").Replace(tag)

		switch mod, ok := modifierSynonyms[tag]; {
		case !ok:
			errs = append(errs,
				ErrUnknownModifier.With(slog.String("modifier", rest[:end+1])))
		case mod == 0:
			ks.OnRelease = true
		default:
			ks.Modifiers |= mod
		}

		rest = strings.TrimSpace(rest[end+1:])
	}

	if rest != "" {
		key, err := ParseKey(rest)
		if err != nil {
			errs = append(errs, err)
		}

		ks.Key = key
	}

	return ks, errors.Join(errs...)
}

// String returns the canonical form of ks, which [ParseKeyStroke] accepts.
func (ks KeyStroke) String() string {
	var sb strings.Builder

	for _, m := range modifierNames {
		if ks.Modifiers&m.mod != 0 {
			sb.WriteString("<" + m.name + ">")
		}
	}

	if ks.OnRelease {
		sb.WriteString("<release>")
	}

	sb.WriteString(ks.Key.String())

	return sb.String()
}
