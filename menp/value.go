package menp

import (
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the type of a [Value].
type Kind int

const (
	// KindBool is a boolean.
	KindBool Kind = iota
	// KindString is a string, usually a menu item id.
	KindString
	// KindList is an ordered list of values.
	KindList
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindList:
		return "list"
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a script value. The zero Value is the boolean false.
type Value struct {
	kind Kind
	b    bool
	s    string
	list []Value
}

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// List returns a list holding a copy of vs.
func List(vs ...Value) Value {
	return Value{kind: KindList, list: slices.Clone(vs)}
}

// Strings returns a list of string values.
func Strings(ss ...string) Value {
	vs := make([]Value, len(ss))
	for i, s := range ss {
		vs[i] = String(s)
	}

	return Value{kind: KindList, list: vs}
}

// Kind returns the type of v.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean held by v, or false for other kinds.
func (v Value) Bool() bool { return v.kind == KindBool && v.b }

// Text returns the string held by v, or "" for other kinds.
func (v Value) Text() string {
	if v.kind == KindString {
		return v.s
	}

	return ""
}

// Items returns a copy of the elements of a list, or nil for other kinds.
func (v Value) Items() []Value {
	if v.kind == KindList {
		return slices.Clone(v.list)
	}

	return nil
}

// Equal reports whether v and o have the same kind and contents. Values of
// different kinds are never equal, so "true" differs from true.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.s == o.s
	case KindList:
		return slices.EqualFunc(v.list, o.list, Value.Equal)
	}

	return false
}

// key returns a string that is equal for equal values.
func (v Value) key() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "b1"
		}

		return "b0"
	case KindString:
		return "s" + strconv.Quote(v.s)
	case KindList:
		var sb strings.Builder

		sb.WriteString("l(")

		for i, e := range v.list {
			if i > 0 {
				sb.WriteByte(';')
			}

			sb.WriteString(e.key())
		}

		sb.WriteByte(')')

		return sb.String()
	}

	return ""
}

// String formats v in script syntax: true or false, a quoted string with
// '"' doubled and '\' escaped, or a parenthesized list.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindString:
		s := strings.ReplaceAll(v.s, `\`, `\\`)

		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	case KindList:
		part := make([]string, len(v.list))
		for i, e := range v.list {
			part[i] = e.String()
		}

		return "(" + strings.Join(part, ";") + ")"
	}

	return ""
}

// Any converts v to plain Go values: bool, string or []any.
func (v Value) Any() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindString:
		return v.s
	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.Any()
		}

		return out
	}

	return nil
}

// collapse turns the values produced by a group into one value: nothing
// becomes an empty list, a single value stays itself, and anything more
// becomes a list.
func collapse(vs []Value) Value {
	switch len(vs) {
	case 0:
		return Value{kind: KindList}
	case 1:
		return vs[0]
	default:
		return Value{kind: KindList, list: vs}
	}
}

// flatten appends v to dst, splicing the elements of a list.
func flatten(dst []Value, v Value) []Value {
	if v.kind == KindList {
		return append(dst, v.list...)
	}

	return append(dst, v)
}
