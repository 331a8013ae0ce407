package menp

import (
	"context"
	"io"
	"log/slog"
	"path"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// programs caches compiled programs by the hash of their dense code.
var programs sync.Map

type entry struct {
	once sync.Once
	prog *Program
	err  error
}

// Program is compiled script code. It is immutable and may be shared by
// any number of interpreters.
type Program struct {
	code    string
	holes   map[int]int    // offset of '(' -> offset of matching ')'
	methods map[string]int // method name -> offset of its body's '('
	order   []string
	defs    bool // code is nothing but method definitions
}

// Load reads, preprocesses and compiles the script at name. Lines starting
// with '@' outside strings include other scripts, relative to the including
// file.
func Load(ctx context.Context, name string, opts ...Option) (*Program, error) {
	o := makeOptions(opts...)
	name = path.Clean(name)

	src, err := o.read(name)
	if err != nil {
		return nil, err
	}

	o.logger.TraceContext(ctx, "read input",
		slog.String("file", name),
		slog.Int("source_bytes", len(src)),
		slog.Bool("read_ahead", true),
	)

	pp := preprocessor{options: o, stack: []string{name}}

	text, err := pp.expand(name, src)
	if err != nil {
		return nil, err
	}

	return compile(ctx, o, text)
}

// Compile preprocesses and compiles src. Includes are resolved relative to
// the working directory.
func Compile(ctx context.Context, src string, opts ...Option) (*Program, error) {
	return compileSource(ctx, makeOptions(opts...), src)
}

func compileSource(ctx context.Context, o options, src string) (*Program, error) {
	pp := preprocessor{options: o}

	text, err := pp.expand(".", src)
	if err != nil {
		return nil, err
	}

	return compile(ctx, o, text)
}

func compile(ctx context.Context, o options, text string) (*Program, error) {
	code := dense(text)
	hash := xxh3.HashString(code)
	key := strconv.FormatUint(hash, 36)

	v, loaded := programs.LoadOrStore(key, &entry{})
	e := v.(*entry)

	e.once.Do(func() { e.prog, e.err = build(code) })

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("key", key),
		slog.Bool("cache_hit", loaded),
	)

	if e.err == nil && e.prog.code != code {
		return build(code)
	}

	return e.prog, e.err
}

func build(code string) (*Program, error) {
	holes, err := wormholes(code)
	if err != nil {
		return nil, err
	}

	p := &Program{code: code, holes: holes}
	p.methods, p.order, p.defs = extract(code, holes)

	return p, nil
}

// Methods returns the declared method names in declaration order.
func (p *Program) Methods() []string { return slices.Clone(p.order) }

// HasMethod reports whether p declares name.
func (p *Program) HasMethod(name string) bool {
	_, ok := p.methods[name]

	return ok
}

// String returns the dense code of p.
func (p *Program) String() string { return p.code }

// wormholes maps every '(' outside strings to its matching ')'.
func wormholes(code string) (map[int]int, error) {
	var (
		holes = make(map[int]int)
		open  []int
		quote = -1
	)

	for i := 0; i < len(code); i++ {
		c := code[i]

		switch {
		case quote >= 0:
			if c == '"' {
				quote = -1
			}
		case c == '"':
			quote = i
		case c == '(':
			open = append(open, i)
		case c == ')':
			if len(open) == 0 {
				return nil, ErrUnbalanced.With(slog.Int("offset", i))
			}

			holes[open[len(open)-1]] = i
			open = open[:len(open)-1]
		}
	}

	if quote >= 0 {
		return nil, ErrUnbalanced.With(
			slog.Int("offset", quote),
			slog.String("reason", "unterminated string"),
		)
	}

	if len(open) > 0 {
		return nil, ErrUnbalanced.With(slog.Int("offset", open[len(open)-1]))
	}

	return holes, nil
}

// extract finds "name:(" at the top level, jumping over groups and strings.
// defs reports whether the code holds definitions and nothing else.
func extract(code string, holes map[int]int) (map[string]int, []string, bool) {
	var (
		methods = make(map[string]int)
		order   []string
		defs    = true
		start   int
	)

	for i := 0; i < len(code); i++ {
		switch code[i] {
		case '(':
			defs = false
			i = holes[i]
			start = i + 1
		case '"':
			defs = false
			i = closeQuote(code, i)
			start = i + 1
		case ':':
			name := code[start:i]
			if name == "" || i+1 >= len(code) || code[i+1] != '(' {
				defs = false
				start = i + 1

				continue
			}

			if _, ok := methods[name]; !ok {
				order = append(order, name)
			}

			methods[name] = i + 1
			i = holes[i+1]
			start = i + 1
		}
	}

	if start < len(code) {
		defs = false
	}

	return methods, order, defs && len(order) > 0
}

// closeQuote returns the offset of the '"' ending the string opened at i.
func closeQuote(code string, i int) int {
	if j := strings.IndexByte(code[i+1:], '"'); j >= 0 {
		return i + 1 + j
	}

	return len(code) - 1
}

// dense removes spaces and newlines outside strings.
func dense(text string) string {
	var (
		sb  strings.Builder
		str bool
	)

	sb.Grow(len(text))

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch {
		case str:
			str = c != '"'
		case c == ' ' || c == '\n':
			continue
		case c == '"':
			str = true
		}

		sb.WriteByte(c)
	}

	return sb.String()
}

var whitespace = strings.NewReplacer("\r", "\n", "\f", "\n", "\t", " ")

type preprocessor struct {
	options

	stack []string
}

// expand drops comments and splices includes into src, read from file.
func (p *preprocessor) expand(file, src string) (string, error) {
	src = whitespace.Replace(src)

	var (
		sb  strings.Builder
		str bool
	)

	for i := 0; i < len(src); i++ {
		c := src[i]

		switch {
		case str:
			str = c != '"'
		case c == '"':
			str = true
		case c == '#' || c == '@':
			eol := strings.IndexByte(src[i:], '\n')
			if eol < 0 {
				eol = len(src)
			} else {
				eol += i
			}

			if c == '@' {
				inc, err := p.include(file, strings.TrimSpace(src[i+1:eol]))
				if err != nil {
					return "", err
				}

				sb.WriteString(inc)
			}

			i = eol - 1

			continue
		}

		sb.WriteByte(c)
	}

	return sb.String(), nil
}

func (p *preprocessor) include(from, target string) (string, error) {
	name := path.Clean(target)
	if !path.IsAbs(name) && from != "." {
		name = path.Join(path.Dir(from), name)
	}

	if slices.Contains(p.stack, name) {
		return "", ErrIncludeCycle.With(
			slog.String("file", name),
			slog.String("from", from),
		)
	}

	src, err := p.read(name)
	if err != nil {
		return "", err
	}

	p.stack = append(p.stack, name)
	defer func() { p.stack = p.stack[:len(p.stack)-1] }()

	text, err := p.expand(name, src)
	if err != nil {
		return "", err
	}

	return text + "\n", nil
}

func (o options) read(name string) (string, error) {
	f, err := o.fsys.Open(name)
	if err != nil {
		return "", ErrReadInput.Wrap(err).With(slog.String("file", name))
	}

	ra := readahead.NewReadCloser(f)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", ErrReadInput.Wrap(err).With(slog.String("file", name))
	}

	return string(data), nil
}
