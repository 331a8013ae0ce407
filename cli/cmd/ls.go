package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/jmml/menu"
)

// Ls lists the registered ids of a menu.
type Ls struct {
	Menu `embed:""`

	Where  string `help:"Boolean expression selecting nodes, e.g. 'kind == \"check\" && selected'." short:"w"`
	Script string `help:"Menp script bound to invoke= settings and main."                             short:"s" type:"existingfile"`
}

// Run executes the ls command.
func (l *Ls) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	filter, err := compileFilter(l.Where)
	if err != nil {
		return err
	}

	s, err := l.open(ctx, l.Script)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(stdout(ctx), 0, 0, 2, ' ', 0)

	for id, n := range s.items.All() {
		ok, err := filter.match(id, n)
		if err != nil {
			return err
		}

		if ok {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				id, n.Kind(), state(n), strconv.Quote(n.Caption()))
		}
	}

	return w.Flush()
}

// filter is a compiled --where expression. The zero filter matches every
// node.
type filter struct {
	source  string
	program *vm.Program
}

func compileFilter(source string) (filter, error) {
	if strings.TrimSpace(source) == "" {
		return filter{}, nil
	}

	env := menu.Env("", menu.NewNode(menu.KindItem, ""))

	program, err := expr.Compile(source, expr.Env(env), expr.AsBool())
	if err != nil {
		return filter{}, ErrFilter.Wrap(err).
			With(slog.String("source", source))
	}

	return filter{source: source, program: program}, nil
}

func (f filter) match(id string, n *menu.Node) (bool, error) {
	if f.program == nil {
		return true, nil
	}

	out, err := expr.Run(f.program, menu.Env(id, n))
	if err != nil {
		return false, ErrFilter.Wrap(err).
			With(slog.String("source", f.source), slog.String("id", id))
	}

	ok, _ := out.(bool)

	return ok, nil
}

// state summarizes the flags of n that differ from a fresh item.
func state(n *menu.Node) string {
	var flags []string

	if !n.Visible() {
		flags = append(flags, "hidden")
	}

	if !n.Enabled() {
		flags = append(flags, "disabled")
	}

	if n.Selected() {
		flags = append(flags, "selected")
	}

	if n.Kind() == menu.KindSlider {
		flags = append(flags, "value="+strconv.Itoa(n.Value()))
	}

	if len(flags) == 0 {
		return "-"
	}

	return strings.Join(flags, ",")
}
