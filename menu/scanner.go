package menu

import "strings"

// verbosity changes requested on a line.
const (
	keepVerbosity = iota
	setQuiet
	setVerbose
)

// directive is the classified content of one logical line.
type directive struct {
	push, pop         bool
	group, nullGroup  bool
	ungroup           bool
	weak, hard        bool
	disabled, enabled bool
	hidden            bool
	bang, rich        bool
	verbosity         int
	caption, special  string
	hasCaption        bool
	hasSpecial        bool
	settings          []string
	unterminated      bool
}

// tokens splits text into raw tokens. Double-quoted strings and
// parenthesized groups (which may contain quoted strings) are single
// tokens. A '!' or '$' at the start of a token is removed and reported
// through bang and rich. Scanning stops at a token that starts with '#'.
//
// An unterminated string or group is dropped and reported through the
// last result.
func tokens(text string) (toks []string, bang, rich, unterminated bool) {
	var (
		tok      strings.Builder
		str, par bool
	)

	for _, c := range text + " " {
		switch {
		case tok.Len() == 0 && c == '!':
			bang = true
		case tok.Len() == 0 && c == '$':
			rich = true
		case str:
			tok.WriteRune(c)
			if c == '"' {
				str = false
			}
		case par:
			tok.WriteRune(c)
			switch c {
			case ')':
				par = false
			case '"':
				str = true
			}
		case c != ' ' && c != '\t':
			tok.WriteRune(c)
			switch c {
			case '(':
				par = true
			case '"':
				str = true
			}
		default:
			if tok.Len() == 0 {
				continue
			}

			if strings.HasPrefix(tok.String(), "#") {
				return toks, bang, rich, false
			}

			toks = append(toks, tok.String())
			tok.Reset()
		}
	}

	return toks, bang, rich, tok.Len() > 0
}

// unquote strips the surrounding quotes of a caption token and resolves
// the "" and \\ escapes.
func unquote(tok string) string {
	tok = strings.TrimPrefix(tok, `"`)
	tok = strings.TrimSuffix(tok, `"`)

	return strings.NewReplacer(`""`, `"`, `\\`, `\`).Replace(tok)
}

// scanLine classifies the tokens of a logical line.
func scanLine(text string) directive {
	var d directive

	toks, bang, rich, unterminated := tokens(text)
	d.bang, d.rich, d.unterminated = bang, rich, unterminated

	for _, tok := range toks {
		switch tok {
		case ">":
			d.push = true
		case "<":
			d.pop = true
		case "{":
			d.group = true
		case "{~":
			d.nullGroup = true
		case "}", "~}":
			d.ungroup = true
		case "-":
			d.weak = true
		case "--":
			d.hard = true
		case "disabled":
			d.disabled = true
		case "enabled":
			d.enabled = true
		case "hidden":
			d.hidden = true
		case "&quite!":
			d.verbosity = setQuiet
		case "&verbose!":
			d.verbosity = setVerbose
		default:
			switch {
			case strings.HasPrefix(tok, `"`):
				d.caption, d.hasCaption = unquote(tok), true
			case strings.HasPrefix(tok, "("):
				s := strings.TrimPrefix(tok, "(")
				d.special, d.hasSpecial = strings.TrimSuffix(s, ")"), true
			default:
				d.settings = append(d.settings, tok)
			}
		}
	}

	return d
}

// stripBang removes the first '!' of caption and returns the rune index it
// had, or -1 if caption has none.
func stripBang(caption string) (string, int) {
	i := strings.IndexByte(caption, '!')
	if i < 0 {
		return caption, -1
	}

	return caption[:i] + caption[i+1:], len([]rune(caption[:i]))
}

// richText wraps caption as rich-text markup.
func richText(caption string) string { return "<html>" + caption + "</html>" }

// tagSpec is the parsed content of a tag special: a tag name, an optional
// quoted text and an optional '?' delimiter, in any order.
type tagSpec struct {
	tag, text       string
	hasTag, hasText bool
	tagAt, textAt   int
	delimiter       bool
	bang, rich      bool
}

func parseTagSpec(special string) tagSpec {
	var s tagSpec

	toks, bang, rich, _ := tokens(special)
	s.bang, s.rich = bang, rich

	for i, tok := range toks {
		switch {
		case tok == "?":
			s.delimiter = true
		case strings.HasPrefix(tok, `"`):
			s.text, s.hasText, s.textAt = unquote(tok), true, i
		default:
			s.tag, s.hasTag, s.tagAt = tok, true, i
		}
	}

	return s
}

// stringValue returns the value of a key=value setting with surrounding
// quotes removed and "" resolved.
func stringValue(setting string) string {
	_, v, _ := strings.Cut(setting, "=")
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		v = v[1 : len(v)-1]
	}

	return strings.ReplaceAll(v, `""`, `"`)
}

// stringValues splits the value of a key=value setting on ';' outside
// quotes. Quotes are removed and "" resolved. A '~' outside quotes marks
// the element as an inverted id.
func stringValues(setting string) []string {
	_, v, _ := strings.Cut(setting, "=")

	var (
		vals     []string
		cur      strings.Builder
		str, inv bool
	)

	flush := func() {
		s := cur.String()
		if inv {
			s = invertedPrefix + s
		}

		vals = append(vals, s)
		cur.Reset()
		inv = false
	}

	rs := []rune(v)
	for i := 0; i < len(rs); i++ {
		c := rs[i]

		switch {
		case c == '"' && i+1 < len(rs) && rs[i+1] == '"':
			cur.WriteRune('"')
			i++
		case c == '"':
			str = !str
		case str:
			cur.WriteRune(c)
		case c == '~':
			inv = true
		case c == ';':
			flush()
		default:
			cur.WriteRune(c)
		}
	}

	flush()

	return vals
}
