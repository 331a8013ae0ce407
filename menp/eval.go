package menp

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/jmml/menu"
)

// Operator characters that may follow the leading groups of a segment.
const (
	opCall      = '>'
	opReturn    = '<'
	opUndeclare = '~'
	opExpand    = '.'
	opNot       = '*'
	opSame      = '='
	opUnion     = '|'
	opIntersect = '&'
	opParity    = '^'
	opIf        = ','
	opAssign    = ':'
	opSet       = '!'
	opQuery     = '?'
)

// Operators lists every operator character.
const Operators = "><~.*=|&^,:!?"

// frame is one active method call.
type frame struct {
	prog   *Program
	index  *menu.Index
	params []Value
	depth  int
}

// span is a half-open range of a program's code.
type span struct{ start, end int }

func (f *frame) text(s span) string { return f.prog.code[s.start:s.end] }

// result is what a segment produced. returned is set by "<" and carries
// through enclosing groups up to the method call.
type result struct {
	values   []Value
	returned bool
}

func values(vs ...Value) result { return result{values: vs} }

// split divides code[start:end] at ';' outside groups and strings. A
// trailing ';' is optional.
func (p *Program) split(start, end int) []span {
	if start >= end {
		return nil
	}

	var (
		out  []span
		from = start
	)

	for i := start; i < end; i++ {
		switch p.code[i] {
		case '(':
			i = p.holes[i]
		case '"':
			i = closeQuote(p.code, i)
		case ';':
			out = append(out, span{from, i})
			from = i + 1
		}
	}

	if from < end {
		out = append(out, span{from, end})
	}

	return out
}

// exec runs the segment code[start:end]: its leading groups in order, then
// the operator that follows them, if any.
func (in *Interp) exec(ctx context.Context, f *frame, start, end int) (result, error) {
	code := f.prog.code
	i := start

	for i < end && code[i] == '(' {
		j := f.prog.holes[i]

		r, err := in.exec(ctx, f, i+1, j)
		if err != nil || r.returned {
			return r, err
		}

		i = j + 1
	}

	if i >= end {
		return result{}, nil
	}

	op := code[i]
	if strings.IndexByte(Operators, op) < 0 {
		vs, err := in.values(ctx, f, f.prog.split(i, end))

		return values(vs...), err
	}

	i++

	queries := 1
	for op == opQuery && queries < 3 && i < end && code[i] == opQuery {
		queries++
		i++
	}

	args := f.prog.split(i, end)

	switch op {
	case opCall:
		return in.invoke(ctx, f, args)
	case opReturn:
		vs, err := in.values(ctx, f, args)

		return result{values: vs, returned: true}, err
	case opUndeclare:
		for _, a := range args {
			if name, ok := strings.CutPrefix(f.text(a), "%"); ok {
				delete(in.vars, name)
			}
		}

		return result{}, nil
	case opExpand:
		return in.fold(ctx, f, args, expand)
	case opNot:
		return in.fold(ctx, f, args, not)
	case opSame:
		return in.fold(ctx, f, args, same)
	case opUnion:
		return in.fold(ctx, f, args, union)
	case opIntersect:
		return in.fold(ctx, f, args, intersect)
	case opParity:
		return in.fold(ctx, f, args, parity)
	case opIf:
		return in.cond(ctx, f, args)
	case opAssign:
		return in.assign(ctx, f, args)
	case opSet:
		return result{}, in.set(ctx, f, args)
	case opQuery:
		return in.query(ctx, f, args, queries)
	}

	return result{}, nil
}

// item evaluates one argument. Groups keep their raw result so that a
// return inside them can be detected.
func (in *Interp) item(ctx context.Context, f *frame, s span) (result, error) {
	text := f.text(s)

	switch {
	case text == "":
		return values(Bool(false)), nil

	case text[0] == '(':
		if f.prog.holes[s.start] == s.end-1 {
			return in.exec(ctx, f, s.start+1, s.end-1)
		}

		return in.exec(ctx, f, s.start, s.end)

	case text == "$$":
		return values(List(f.params...)), nil

	case text[0] == '$':
		n, err := strconv.Atoi(text[1:])
		if err != nil || n < 0 || n >= len(f.params) {
			return result{}, ErrParameter.With(
				slog.String("ref", text),
				slog.Int("params", len(f.params)),
			)
		}

		return values(f.params[n]), nil

	case text[0] == '%':
		v, ok := in.vars[text[1:]]
		if !ok {
			return result{}, ErrUndefinedVariable.With(slog.String("name", text[1:]))
		}

		return values(v), nil

	case len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"':
		s := strings.ReplaceAll(text[1:len(text)-1], `""`, `"`)

		return values(String(strings.ReplaceAll(s, `\\`, `\`))), nil
	}

	return values(Bool(text == "true" || text == "1")), nil
}

func (in *Interp) value(ctx context.Context, f *frame, s span) (Value, error) {
	r, err := in.item(ctx, f, s)

	return collapse(r.values), err
}

func (in *Interp) values(ctx context.Context, f *frame, args []span) ([]Value, error) {
	vs := make([]Value, 0, len(args))

	for _, a := range args {
		v, err := in.value(ctx, f, a)
		if err != nil {
			return nil, err
		}

		vs = append(vs, v)
	}

	return vs, nil
}

// fold evaluates every argument and combines them with fn.
func (in *Interp) fold(
	ctx context.Context,
	f *frame,
	args []span,
	fn func([]Value) ([]Value, error),
) (result, error) {
	vs, err := in.values(ctx, f, args)
	if err != nil {
		return result{}, err
	}

	out, err := fn(vs)

	return values(out...), err
}

// invoke handles ">name;args...". The name is taken literally unless it is
// a variable, parameter, string or group.
func (in *Interp) invoke(ctx context.Context, f *frame, args []span) (result, error) {
	if len(args) == 0 {
		return result{}, ErrArity.With(slog.String("operator", string(opCall)))
	}

	name := f.text(args[0])
	if name != "" && strings.IndexByte(`%$"(`, name[0]) >= 0 {
		v, err := in.value(ctx, f, args[0])
		if err != nil {
			return result{}, err
		}

		name = v.Text()
	}

	params, err := in.values(ctx, f, args[1:])
	if err != nil {
		return result{}, err
	}

	vs, err := in.call(ctx, f.index, name, params, f.depth+1)

	return values(vs...), err
}

// cond handles ",cond;then;else". The arguments are evaluated in order
// until one yields a boolean (the first boolean of its flattened value);
// that boolean selects the branch. Only the chosen branch is evaluated
// again, and a return inside it returns from the enclosing method.
func (in *Interp) cond(ctx context.Context, f *frame, args []span) (result, error) {
	if len(args) == 0 {
		return result{}, ErrArity.With(slog.String("operator", string(opIf)))
	}

	branch := 2

scan:
	for _, a := range args {
		c, err := in.value(ctx, f, a)
		if err != nil {
			return result{}, err
		}

		for _, v := range flatten(nil, c) {
			if v.kind == KindBool {
				if v.b {
					branch = 1
				}

				break scan
			}
		}
	}

	if branch >= len(args) {
		return result{}, nil
	}

	r, err := in.item(ctx, f, args[branch])
	if err != nil || r.returned {
		return r, err
	}

	return values(collapse(r.values)), nil
}

// assign handles ":name;value". It yields the source text of the value.
func (in *Interp) assign(ctx context.Context, f *frame, args []span) (result, error) {
	if len(args) < 2 {
		return result{}, ErrArity.With(slog.String("operator", string(opAssign)))
	}

	v, err := in.value(ctx, f, args[1])
	if err != nil {
		return result{}, err
	}

	in.vars[strings.TrimPrefix(f.text(args[0]), "%")] = v

	return values(String(f.text(args[1]))), nil
}

// nodes evaluates args and calls fn with every live node named by a string,
// splicing lists, until fn returns false.
func (in *Interp) nodes(
	ctx context.Context,
	f *frame,
	args []span,
	fn func(*menu.Node) bool,
) error {
	for _, a := range args {
		v, err := in.value(ctx, f, a)
		if err != nil {
			return err
		}

		for _, id := range flatten(nil, v) {
			if id.kind != KindString || f.index == nil {
				continue
			}

			n := f.index.Resolve(id.s)
			if n == nil {
				continue
			}

			if !fn(n) {
				return nil
			}
		}
	}

	return nil
}

// set handles "!setting;ids...".
func (in *Interp) set(ctx context.Context, f *frame, args []span) error {
	if len(args) == 0 {
		return ErrArity.With(slog.String("operator", string(opSet)))
	}

	raw := f.text(args[0])

	if spec, ok := strings.CutPrefix(raw, acceleratorSetting); ok {
		ks, err := menu.ParseKeyStroke(spec)
		if err != nil {
			in.opts.logger.WarnContext(ctx, "invalid accelerator",
				slog.String("accelerator", spec),
				slog.Any("error", err),
			)

			return nil
		}

		return in.nodes(ctx, f, args[1:], func(n *menu.Node) bool {
			switch n.Kind() {
			case menu.KindItem, menu.KindCheck, menu.KindRadio:
				n.SetAccelerator(ks)
			default:
			}

			return true
		})
	}

	st, err := parseSetting(raw)
	if err != nil {
		return err
	}

	changed := false

	err = in.nodes(ctx, f, args[1:], func(n *menu.Node) bool {
		st.apply(n)
		changed = true

		return true
	})

	if changed && st.attr == attrVisible {
		f.index.Refresh()
	}

	return err
}

// query handles "?", "??" and "???": whether any node is in the state,
// whether all are, and whether an odd number are not.
func (in *Interp) query(ctx context.Context, f *frame, args []span, count int) (result, error) {
	if len(args) == 0 {
		return result{}, ErrArity.With(
			slog.String("operator", strings.Repeat(string(opQuery), count)))
	}

	st, err := parseSetting(f.text(args[0]))
	if err != nil {
		return result{}, err
	}

	var (
		found bool
		fails int
	)

	switch count {
	case 1:
		err = in.nodes(ctx, f, args[1:], func(n *menu.Node) bool {
			found = st.holds(n)

			return !found
		})

		return values(Bool(found)), err

	case 2:
		err = in.nodes(ctx, f, args[1:], func(n *menu.Node) bool {
			if !st.holds(n) {
				fails++
			}

			return fails == 0
		})

		return values(Bool(fails == 0)), err
	}

	err = in.nodes(ctx, f, args[1:], func(n *menu.Node) bool {
		if !st.holds(n) {
			fails++
		}

		return true
	})

	return values(Bool(fails%2 == 1)), err
}
