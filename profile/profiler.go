package profile

import (
	"context"
	"log/slog"
	"slices"

	"github.com/ardnew/jmml/log"
)

// Session is a running profile. Stop flushes and closes its output.
type Session interface{ Stop() }

// Profiler selects which profile to collect and where to write it.
type Profiler struct {
	Mode  string
	Dir   string
	Quiet bool
}

// Start begins profiling. It returns a no-op [Session] if Mode is empty,
// unsupported, or the binary was built without the pprof tag.
// Both Start and Stop are always safely callable.
func (p Profiler) Start(ctx context.Context) Session {
	if p.Mode == "" {
		return ignore{}
	}

	if !Supported(p.Mode) {
		log.WarnContext(ctx, "profiling unavailable",
			slog.String("mode", p.Mode),
			slog.Any("supported", Modes()),
			slog.String("tag", Tag))

		return ignore{}
	}

	log.DebugContext(ctx, "profiling started",
		slog.String("mode", p.Mode),
		slog.String("dir", p.Dir))

	return start(p.Mode, p.Dir, p.Quiet)
}

// Supported reports whether mode is one of [Modes].
func Supported(mode string) bool {
	return slices.Contains(Modes(), mode)
}

type ignore struct{}

func (ignore) Stop() {}
