package cmd

import (
	"context"

	"github.com/ardnew/jmml/cli/cmd/repl"
	"github.com/ardnew/jmml/log"
	"github.com/ardnew/jmml/menp"
	"github.com/ardnew/jmml/pkg"
)

// Repl evaluates Menp expressions interactively against a built menu.
type Repl struct {
	Menu `embed:""`

	Script string `help:"Menp script bound to invoke= settings and main." short:"s" type:"existingfile"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := r.open(ctx, r.Script)
	if err != nil {
		return err
	}

	if s.interp == nil {
		s.interp = menp.New(nil)
	}

	cacheDir := pkg.CacheDir()
	if ktx := kongContextFrom(ctx); ktx != nil {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok {
			cacheDir = dir
		}
	}

	return repl.Run(ctx, repl.Env{
		Interp: s.interp,
		Items:  s.items,
		Host:   s.window,
	}, cacheDir, log.Default())
}
