package cmd

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/jmml/menu"
)

// Output selects how a menu snapshot is written.
type Output struct {
	Format string `default:"text" enum:"text,json,yaml,cbor" help:"Output format (${enum})."       short:"f"`
	Indent int    `default:"2"                                help:"Indent width for JSON and YAML." short:"i"`
}

// write encodes snap to w in the selected format.
func (o Output) write(ctx context.Context, w io.Writer, snap menu.Snapshot) error {
	var (
		data []byte
		err  error
	)

	switch o.Format {
	case "", "text":
		return snap.WriteText(w)

	case "json":
		if o.Indent > 0 {
			data, err = json.MarshalIndent(snap, "", strings.Repeat(" ", o.Indent))
		} else {
			data, err = json.Marshal(snap)
		}

		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		data = append(data, '\n')

	case "yaml":
		var opts []yaml.EncodeOption
		if o.Indent > 0 {
			opts = append(opts, yaml.Indent(o.Indent))
		} else {
			opts = append(opts, yaml.Flow(true))
		}

		data, err = yaml.MarshalContext(ctx, snap, opts...)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

	case "cbor":
		// Canonical encoding keeps the output byte-stable across runs.
		em, err := cbor.CanonicalEncOptions().EncMode()
		if err != nil {
			return ErrCBORMarshal.Wrap(err)
		}

		data, err = em.Marshal(snap)
		if err != nil {
			return ErrCBORMarshal.Wrap(err)
		}

	default:
		return ErrUnknownFormat.With(slog.String("format", o.Format))
	}

	_, err = w.Write(data)

	return err
}

// Build builds a menu description and prints the resulting tree.
type Build struct {
	Menu   `embed:""`
	Output `embed:""`

	Script string `help:"Menp script bound to invoke= settings and main." short:"s" type:"existingfile"`
}

// Run executes the build command.
func (b *Build) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := b.open(ctx, b.Script)
	if err != nil {
		return err
	}

	return b.write(ctx, stdout(ctx), s.snapshot())
}
