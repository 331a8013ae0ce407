package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/jmml/menp"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "ids", "methods", "vars", "tree", "clear", "quit"}

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes: whitespace, argument punctuation, reference sigils and the Menp
// operators. '~', '.' and '-' are kept inside words because ids may contain
// them (e.g. ~wrap, file.open).
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', ';', '(', ')', '"', '$', '%', '<':
		return true
	}

	return r != '~' && r != '.' && strings.ContainsRune(menp.Operators, r)
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input.
// Returns an empty word when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// scope is the kind of name expected at a position in an expression.
type scope int

const (
	scopeAny      scope = iota // no particular context
	scopeMethods               // after ">"
	scopeVars                  // after "%"
	scopeIDs                   // inside a string
	scopeSettings              // after "!" or "?"
	scopeBools                 // after "="
)

// scopeAt classifies the word starting at wordStart.
func scopeAt(input string, wordStart int) scope {
	prefix := input[:wordStart]

	// Doubled quotes inside strings leave the parity unchanged.
	if strings.Count(prefix, `"`)%2 == 1 {
		return scopeIDs
	}

	r, _ := utf8.DecodeLastRuneInString(prefix)

	switch r {
	case '>':
		return scopeMethods
	case '%':
		return scopeVars
	case '!', '?':
		return scopeSettings
	case '=':
		return scopeBools
	}

	return scopeAny
}

// vocabulary is the set of names an expression can refer to.
type vocabulary struct {
	ids      []string
	methods  []string
	vars     []string
	settings []string
}

// vocabulary collects the names currently known to the session.
func (m model) vocabulary() vocabulary {
	return vocabulary{
		ids:      m.env.Items.IDs(),
		methods:  m.env.Interp.Methods(),
		vars:     slices.Sorted(maps.Keys(m.env.Interp.Vars())),
		settings: menp.Settings(),
	}
}

// candidates returns the completions for a word in scope sc.
func (v vocabulary) candidates(sc scope) []string {
	switch sc {
	case scopeMethods:
		return v.methods
	case scopeVars:
		return v.vars
	case scopeIDs:
		return v.ids
	case scopeSettings:
		return v.settings
	case scopeBools:
		return []string{"true", "false"}
	case scopeAny:
	}

	return slices.Concat(v.methods, []string{"true", "false"})
}

// computeMatches calculates the fuzzy match results for the word at the cursor.
// It returns the matches (ranked best-first), the candidate list, and the word
// boundaries. An empty word in a specific scope (after ">", "%", "!" and so
// on) lists every candidate of that scope; elsewhere it yields no matches so
// the hint stays visible.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, wordStart, wordEnd := wordBounds(input, cursor)

	if m.mode == modeCtrl {
		if word == "" {
			return nil, nil, wordStart, wordEnd
		}

		candidates = ctrlCommands
	} else {
		sc := scopeAt(input, wordStart)
		candidates = m.vocabulary().candidates(sc)

		if word == "" {
			if sc == scopeAny || len(candidates) == 0 {
				return nil, nil, wordStart, wordEnd
			}

			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, candidates, wordStart, wordEnd
		}
	}

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		// Check if adding this candidate would exceed width.
		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	return b.String()
}
