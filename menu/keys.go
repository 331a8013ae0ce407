package menu

import (
	"log/slog"
	"strconv"
	"strings"
)

// Key is a virtual key code. The values follow the AWT VK_ constants so
// that configuration files written for Swing hosts keep their meaning.
type Key int

// KeyNone is the zero key, used when a key name cannot be resolved.
const KeyNone Key = 0

//nolint:gochecknoglobals
var keyCodes = map[string]Key{
	"ENTER": 10, "BACK_SPACE": 8, "TAB": 9, "CANCEL": 3, "CLEAR": 12,
	"SHIFT": 16, "CONTROL": 17, "ALT": 18, "PAUSE": 19, "CAPS_LOCK": 20,
	"ESCAPE": 27, "SPACE": 32, "PAGE_UP": 33, "PAGE_DOWN": 34, "END": 35,
	"HOME": 36, "LEFT": 37, "UP": 38, "RIGHT": 39, "DOWN": 40,
	"COMMA": 44, "MINUS": 45, "PERIOD": 46, "SLASH": 47,
	"SEMICOLON": 59, "EQUALS": 61,
	"OPEN_BRACKET": 91, "BACK_SLASH": 92, "CLOSE_BRACKET": 93,
	"NUMPAD0": 96, "NUMPAD1": 97, "NUMPAD2": 98, "NUMPAD3": 99,
	"NUMPAD4": 100, "NUMPAD5": 101, "NUMPAD6": 102, "NUMPAD7": 103,
	"NUMPAD8": 104, "NUMPAD9": 105,
	"MULTIPLY": 106, "ADD": 107, "SEPARATOR": 108, "SUBTRACT": 109,
	"DECIMAL": 110, "DIVIDE": 111, "DELETE": 127,
	"NUM_LOCK": 144, "SCROLL_LOCK": 145,
	"F1": 112, "F2": 113, "F3": 114, "F4": 115, "F5": 116, "F6": 117,
	"F7": 118, "F8": 119, "F9": 120, "F10": 121, "F11": 122, "F12": 123,
	"F13": 0xF000, "F14": 0xF001, "F15": 0xF002, "F16": 0xF003,
	"F17": 0xF004, "F18": 0xF005, "F19": 0xF006, "F20": 0xF007,
	"F21": 0xF008, "F22": 0xF009, "F23": 0xF00A, "F24": 0xF00B,
	"AMPERSAND": 150, "ASTERISK": 151, "QUOTEDBL": 152, "LESS": 153,
	"PRINTSCREEN": 154, "INSERT": 155, "HELP": 156, "META": 157,
	"GREATER": 160, "BRACELEFT": 161, "BRACERIGHT": 162,
	"BACK_QUOTE": 192, "QUOTE": 222,
	"KP_UP": 224, "KP_DOWN": 225, "KP_LEFT": 226, "KP_RIGHT": 227,
	"AT": 512, "COLON": 513, "CIRCUMFLEX": 514, "DOLLAR": 515,
	"EURO_SIGN": 516, "EXCLAMATION_MARK": 517,
	"INVERTED_EXCLAMATION_MARK": 518, "LEFT_PARENTHESIS": 519,
	"NUMBER_SIGN": 520, "PLUS": 521, "RIGHT_PARENTHESIS": 522,
	"UNDERSCORE": 523, "WINDOWS": 524, "CONTEXT_MENU": 525,
	"ALT_GRAPH": 0xFF7E,
}

//nolint:gochecknoglobals
var keyNames = func() map[Key]string {
	m := make(map[Key]string, len(keyCodes)+36)

	for c := 'A'; c <= 'Z'; c++ {
		keyCodes[string(c)] = Key(c)
	}

	for c := '0'; c <= '9'; c++ {
		keyCodes[string(c)] = Key(c)
	}

	for name, k := range keyCodes {
		if prev, ok := m[k]; !ok || name < prev {
			m[k] = name
		}
	}

	return m
}()

// ParseKey resolves a key name such as "s", "page-up" or "F5". Names are
// case-insensitive and "-" or " " may be used in place of "_". An optional
// "VK_" prefix is accepted.
func ParseKey(name string) (Key, error) {
	norm := strings.ToUpper(strings.TrimSpace(name))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	norm = strings.TrimPrefix(norm, "VK_")

	if k, ok := keyCodes[norm]; ok {
		return k, nil
	}

	return KeyNone, ErrUnknownKey.With(slog.String("key", name))
}

// KeyForRune returns the key that types r, or [KeyNone].
func KeyForRune(r rune) Key {
	switch {
	case r >= 'a' && r <= 'z':
		return Key(r - 'a' + 'A')
	case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return Key(r)
	case r == ' ':
		return keyCodes["SPACE"]
	}

	return KeyNone
}

// String returns the canonical key name.
func (k Key) String() string {
	if k == KeyNone {
		return ""
	}

	if name, ok := keyNames[k]; ok {
		return name
	}

	return "Key(" + strconv.Itoa(int(k)) + ")"
}
