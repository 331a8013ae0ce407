package cmd

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/jmml/log"
	"github.com/ardnew/jmml/pkg"
)

// Watch rebuilds a menu whenever its description, included files or script
// change, printing the tree after every build.
type Watch struct {
	Menu   `embed:""`
	Output `embed:""`

	Script   string        `help:"Menp script bound to invoke= settings and main." short:"s" type:"existingfile"`
	Debounce time.Duration `default:"100ms" help:"Delay after the last change before rebuilding."`
}

// Run executes the watch command. It returns when ctx is done.
func (wc *Watch) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatch.Wrap(err)
	}
	defer watcher.Close()

	for _, dir := range wc.dirs() {
		if err := watcher.Add(dir); err != nil {
			return ErrWatch.Wrap(err).With(slog.String("dir", dir))
		}

		log.DebugContext(ctx, "watching", slog.String("dir", dir))
	}

	wc.rebuild(ctx)

	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if wc.relevant(ev) {
				log.TraceContext(ctx, "file changed",
					slog.String("file", ev.Name),
					slog.String("op", ev.Op.String()),
				)

				pending = time.After(wc.Debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			return ErrWatch.Wrap(err)

		case <-pending:
			pending = nil

			wc.rebuild(ctx)
		}
	}
}

// dirs returns the directories holding the watched files.
func (wc *Watch) dirs() []string {
	var dirs []string

	add := func(dir string) {
		dir = filepath.Clean(dir)
		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	add(filepath.Dir(wc.Config))

	if wc.Script != "" {
		add(filepath.Dir(wc.Script))
	}

	for _, dir := range wc.IncludeDir {
		add(dir)
	}

	return dirs
}

// relevant reports whether ev changes a file a build may read.
func (wc *Watch) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}

	name := filepath.Clean(ev.Name)

	switch {
	case name == filepath.Clean(wc.Config):
		return true
	case wc.Script != "" && name == filepath.Clean(wc.Script):
		return true
	}

	switch filepath.Ext(name) {
	case pkg.ConfigExt, pkg.ScriptExt:
		return true
	}

	return false
}

// rebuild builds the menu and prints it. Failures are logged so that the
// next change can fix them.
func (wc *Watch) rebuild(ctx context.Context) {
	s, err := wc.open(ctx, wc.Script)
	if err != nil {
		log.ErrorContext(ctx, "build failed", slog.Any("error", err))

		return
	}

	if err := wc.write(ctx, stdout(ctx), s.snapshot()); err != nil {
		log.ErrorContext(ctx, "write failed", slog.Any("error", err))
	}
}
