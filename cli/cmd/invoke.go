package cmd

import (
	"context"
	"fmt"
)

// Invoke builds a menu with a Menp script and calls one of its methods.
type Invoke struct {
	Menu `embed:""`

	Script string   `arg:"" help:"Menp script."                   name:"script" type:"existingfile"`
	Method string   `arg:"" help:"Method to call."                name:"method"`
	Params []string `arg:"" help:"String parameters, $0 onward." name:"params" optional:""`
}

// Run executes the invoke command.
func (i *Invoke) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := i.open(ctx, i.Script)
	if err != nil {
		return err
	}

	values, err := s.interp.Invoke(ctx, i.Method, s.items, i.Params...)
	if err != nil {
		return err
	}

	w := stdout(ctx)

	for _, v := range values {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}

	return nil
}
