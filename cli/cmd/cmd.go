package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/alecthomas/kong"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ardnew/jmml/log"
	"github.com/ardnew/jmml/menp"
	"github.com/ardnew/jmml/menu"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer command output goes to.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Kong != nil &&
		ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// Menu selects the menu description to build and how to build it.
type Menu struct {
	Config     string   `arg:"" help:"Menu description file."                          name:"config" type:"existingfile"`
	IncludeDir []string `       help:"Additional directory searched for included files." name:"include-dir" short:"I" type:"existingdir"`
	Quiet      bool     `       help:"Do not echo configuration lines while building."                      short:"q"`
}

// session is a built menu. It owns the window holding the menu bar, which
// keeps the nodes the index refers to alive.
type session struct {
	window *menu.Window
	items  *menu.Index
	interp *menp.Interp
}

// open builds the menu, binding the Menp script if one is given.
func (m Menu) open(ctx context.Context, script string) (*session, error) {
	s := &session{window: menu.NewWindow(filepath.Base(m.Config))}

	opts := []menu.Option{
		menu.WithVerbose(!m.Quiet),
		menu.WithIncludeDirs(m.IncludeDir...),
		menu.WithListener(listener(ctx)),
	}

	if script != "" {
		prog, err := menp.Load(ctx, script)
		if err != nil {
			return nil, err
		}

		s.interp = menp.New(prog)
		opts = append(opts, menu.WithInvoker(s.interp))
	}

	items, err := menu.Build(ctx, s.window, m.Config, opts...)
	if err != nil {
		return nil, err
	}

	s.items = items

	log.DebugContext(ctx, "session opened",
		slog.String("config", m.Config),
		slog.String("script", script),
		slog.Int("ids", items.Len()),
	)

	return s, nil
}

// snapshot captures the current menu bar.
func (s *session) snapshot() menu.Snapshot {
	return menu.Snap(s.window.MenuBar())
}

// resolve finds a node by id, suggesting the closest registered id when
// there is none.
func (s *session) resolve(id string) (*menu.Node, error) {
	if n := s.items.Resolve(id); n != nil {
		return n, nil
	}

	err := ErrUnknownID.With(slog.String("id", id))
	if hint := closest(id, s.items.IDs()); hint != "" {
		err = err.With(slog.String("suggestion", hint))
	}

	return nil, err
}

// closest returns the candidate nearest to target, or "".
func closest(target string, candidates []string) string {
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) == 0 {
		return ""
	}

	sort.Sort(ranks)

	return ranks[0].Target
}

// listener logs the events of built nodes.
func listener(ctx context.Context) menu.Listener {
	return menu.ListenerFuncs{
		Clicked: func(id string) {
			log.InfoContext(ctx, "item clicked", slog.String("id", id))
		},
		Updated: func(id string, value any) {
			log.InfoContext(ctx, "value updated",
				slog.String("id", id),
				slog.Any("value", value),
			)
		},
	}
}
