package cli

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/jmml/log"
	"github.com/ardnew/jmml/profile"
)

// pprofConfig selects a runtime profile. Without the pprof build tag no
// modes exist and only the empty mode is accepted.
type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Enable profiling." placeholder:"MODE" short:"p"`
	Dir  string `default:"${pprofDir}"                          help:"Profile output directory."        type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      cachePath(profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	var group kong.Group

	group.Key = "pprof"
	group.Title = "Profiling (pprof)"

	return group
}

// start starts profiling if configured. The returned stop func is always
// safe to call.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	session := profile.Profiler{Mode: f.Mode, Dir: f.Dir, Quiet: true}.Start(ctx)

	return func() {
		if f.Mode != "" {
			log.DebugContext(ctx, "profiling stopped",
				slog.String("mode", f.Mode),
				slog.String("dir", f.Dir),
			)
		}

		session.Stop()
	}
}
