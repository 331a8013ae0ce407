package menp

import "log/slog"

// expand splices lists into the surrounding values.
func expand(vs []Value) ([]Value, error) {
	var out []Value
	for _, v := range vs {
		out = flatten(out, v)
	}

	return out, nil
}

// not negates booleans and passes everything else through.
func not(vs []Value) ([]Value, error) {
	out := make([]Value, len(vs))
	for i, v := range vs {
		if v.kind == KindBool {
			v = Bool(!v.b)
		}

		out[i] = v
	}

	return out, nil
}

// same compares its first operand with the rest. A list must hold the same
// elements as the remaining operands, in any order and with the same
// multiplicity. Anything else must equal the single remaining operand.
func same(vs []Value) ([]Value, error) {
	if len(vs) == 0 {
		return nil, ErrArity.With(slog.String("operator", string(opSame)))
	}

	left, rest := vs[0], vs[1:]

	if left.kind != KindList {
		return []Value{Bool(len(rest) == 1 && rest[0].Equal(left))}, nil
	}

	if len(left.list) != len(rest) {
		return []Value{Bool(false)}, nil
	}

	count := make(map[string]int, len(rest))
	for _, v := range left.list {
		count[v.key()]++
	}

	for _, v := range rest {
		k := v.key()
		if count[k] == 0 {
			return []Value{Bool(false)}, nil
		}

		count[k]--
	}

	return []Value{Bool(true)}, nil
}

// set is an insertion-ordered set of values.
type set struct {
	keys  map[string]bool
	items []Value
}

func newSet() *set { return &set{keys: make(map[string]bool)} }

func (s *set) has(v Value) bool { return s.keys[v.key()] }

func (s *set) add(v Value) {
	if k := v.key(); !s.keys[k] {
		s.keys[k] = true
		s.items = append(s.items, v)
	}
}

// boolAcc folds booleans with a binary operator. It stays unset until the
// first boolean.
type boolAcc struct {
	set bool
	val bool
}

func (a *boolAcc) fold(v bool, fn func(a, b bool) bool) {
	if !a.set {
		a.set, a.val = true, v

		return
	}

	a.val = fn(a.val, v)
}

func (a boolAcc) appendTo(vs []Value) []Value {
	if a.set {
		return append(vs, Bool(a.val))
	}

	return vs
}

// union yields every distinct non-boolean operand in order, followed by the
// disjunction of the boolean operands, if there were any.
func union(vs []Value) ([]Value, error) {
	var (
		s   = newSet()
		acc boolAcc
	)

	for _, v := range vs {
		if v.kind == KindBool {
			acc.fold(v.b, func(a, b bool) bool { return a || b })

			continue
		}

		for _, e := range flatten(nil, v) {
			s.add(e)
		}
	}

	return acc.appendTo(s.items), nil
}

// intersect keeps the values common to every non-boolean operand, followed
// by the conjunction of the boolean operands. The first non-boolean operand
// seeds the result. A later list filters it, and a later single value must
// be in it and then becomes the only member.
func intersect(vs []Value) ([]Value, error) {
	var (
		s     *set
		empty bool
		acc   boolAcc
	)

	for _, v := range vs {
		switch {
		case v.kind == KindBool:
			acc.fold(v.b, func(a, b bool) bool { return a && b })

		case s == nil:
			s = newSet()
			for _, e := range flatten(nil, v) {
				s.add(e)
			}

		case v.kind == KindList:
			keep := newSet()
			for _, e := range v.list {
				keep.add(e)
			}

			next := newSet()
			for _, e := range s.items {
				if keep.has(e) {
					next.add(e)
				}
			}

			s = next

		case !s.has(v):
			empty = true

		default:
			s = newSet()
			s.add(v)
		}
	}

	var out []Value
	if s != nil && !empty {
		out = s.items
	}

	return acc.appendTo(out), nil
}

// parity yields the values that occur an odd number of times, in order of
// first occurrence, followed by the exclusive or of the boolean operands.
func parity(vs []Value) ([]Value, error) {
	var (
		s      = newSet()
		odd    = make(map[string]bool)
		acc    boolAcc
		toggle = func(e Value) {
			s.add(e)
			k := e.key()
			odd[k] = !odd[k]
		}
	)

	for _, v := range vs {
		if v.kind == KindBool {
			acc.fold(v.b, func(a, b bool) bool { return a != b })

			continue
		}

		for _, e := range flatten(nil, v) {
			toggle(e)
		}
	}

	var out []Value

	for _, e := range s.items {
		if odd[e.key()] {
			out = append(out, e)
		}
	}

	return acc.appendTo(out), nil
}
