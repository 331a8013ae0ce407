package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ardnew/jmml/log"
)

// Click builds a menu, activates nodes in order and prints the resulting
// tree.
type Click struct {
	Menu   `embed:""`
	Output `embed:""`

	IDs    []string `arg:"" help:"Ids of the nodes to click, in order."               name:"id"`
	Script string   `       help:"Menp script bound to invoke= settings and main." short:"s" type:"existingfile"`
}

// Run executes the click command.
func (c *Click) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := c.open(ctx, c.Script)
	if err != nil {
		return err
	}

	var errs []error

	for _, id := range c.IDs {
		n, err := s.resolve(id)
		if err != nil {
			return err
		}

		if !n.Enabled() {
			log.WarnContext(ctx, "node disabled", slog.String("id", id))
		}

		if err := n.Click(ctx); err != nil {
			errs = append(errs, WrapError(err).With(slog.String("id", id)))
		}
	}

	if err := c.write(ctx, stdout(ctx), s.snapshot()); err != nil {
		return err
	}

	return errors.Join(errs...)
}
