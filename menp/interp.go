package menp

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ardnew/jmml/menu"
)

// Interp evaluates programs against a menu. Variables live as long as the
// interpreter and are shared by every method. Calls are serialized, so an
// Interp may be used from several goroutines.
type Interp struct {
	mu      sync.Mutex
	opts    options
	methods map[string]method
	order   []string
	vars    map[string]Value
}

type method struct {
	prog *Program
	open int
}

// New returns an interpreter for prog, which may be nil.
func New(prog *Program, opts ...Option) *Interp {
	in := &Interp{
		opts:    makeOptions(opts...),
		methods: make(map[string]method),
		vars:    make(map[string]Value),
	}

	if prog != nil {
		in.define(prog)
	}

	return in
}

func (in *Interp) define(p *Program) {
	for _, name := range p.order {
		if _, ok := in.methods[name]; !ok {
			in.order = append(in.order, name)
		}

		in.methods[name] = method{prog: p, open: p.methods[name]}
	}
}

// Invoke calls method with string parameters, available to the body as $0,
// $1 and so on. It returns the values given to "<", or nil when the method
// did not return.
func (in *Interp) Invoke(
	ctx context.Context,
	method string,
	items *menu.Index,
	params ...string,
) ([]Value, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	args := make([]Value, len(params))
	for i, p := range params {
		args[i] = String(p)
	}

	return in.call(ctx, items, method, args, 1)
}

// Run implements [menu.Invoker].
func (in *Interp) Run(
	ctx context.Context,
	method string,
	items *menu.Index,
	params ...string,
) error {
	_, err := in.Invoke(ctx, method, items, params...)

	return err
}

// HasMethod implements [menu.MethodChecker].
func (in *Interp) HasMethod(name string) bool {
	in.mu.Lock()
	defer in.mu.Unlock()

	_, ok := in.methods[name]

	return ok
}

// Methods returns the defined method names in definition order.
func (in *Interp) Methods() []string {
	in.mu.Lock()
	defer in.mu.Unlock()

	return slices.Clone(in.order)
}

// Vars returns a copy of the variables.
func (in *Interp) Vars() map[string]Value {
	in.mu.Lock()
	defer in.mu.Unlock()

	return maps.Clone(in.vars)
}

// Eval compiles and runs src. If src only defines methods, they are added
// to the interpreter (replacing methods of the same name) and Eval returns
// nil. Otherwise src is evaluated like a method body without parameters
// and Eval returns the values it produced, whether or not it returned.
func (in *Interp) Eval(ctx context.Context, src string, items *menu.Index) ([]Value, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	p, err := compileSource(ctx, in.opts, src)
	if err != nil {
		return nil, err
	}

	if p.defs {
		in.define(p)
		in.opts.logger.DebugContext(ctx, "methods defined",
			slog.Any("methods", p.order))

		return nil, nil
	}

	r, err := in.exec(ctx, &frame{prog: p, index: items}, 0, len(p.code))

	return r.values, err
}

func (in *Interp) call(
	ctx context.Context,
	items *menu.Index,
	name string,
	params []Value,
	depth int,
) ([]Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, context.Cause(ctx)
	}

	if depth > in.opts.maxDepth {
		return nil, ErrMaxDepthExceeded.With(
			slog.String("method", name),
			slog.Int("max_depth", in.opts.maxDepth),
		)
	}

	m, ok := in.methods[name]
	if !ok {
		err := ErrMethodNotFound.With(slog.String("method", name))
		if alt := suggest(name, in.order); alt != "" {
			err = err.With(slog.String("suggestion", alt))
		}

		return nil, err
	}

	in.opts.logger.TraceContext(ctx, "invoke",
		slog.String("method", name),
		slog.Int("depth", depth),
		slog.Int("params", len(params)),
	)

	f := &frame{prog: m.prog, index: items, params: params, depth: depth}

	r, err := in.exec(ctx, f, m.open+1, m.prog.holes[m.open])
	if err != nil || !r.returned {
		return nil, err
	}

	return r.values, nil
}

// suggest returns the candidate closest to target, or "".
func suggest(target string, candidates []string) string {
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) == 0 {
		return ""
	}

	sort.Sort(ranks)

	return ranks[0].Target
}
